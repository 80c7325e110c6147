package config

import (
	"os"
	"strconv"
	"strings"
)

// languageCodeMap maps 2-letter language codes to full language names
var languageCodeMap = map[string]string{
	"en": "English",
	"ar": "Arabic",
	"he": "Hebrew",
	"fa": "Persian",
	"ur": "Urdu",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
}

// rtlLanguageCodes holds the language codes rendered right-to-left
var rtlLanguageCodes = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
}

// Config holds all configuration for the image prompt service
type Config struct {
	// Server configuration
	Port           string
	AllowedOrigins string

	// LLM provider selection: "gemini", "openai" or "stub"
	LLMProvider string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// Output languages
	DescriptionLanguageCode string
	PromptLanguageCode      string

	// Image intake limits
	MaxImageBytes     int64
	MaxImageDimension int

	// Credential storage
	KeystorePath string

	// Rate limiting
	RateLimitPerMinute int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// Server defaults
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		// Provider defaults
		LLMProvider: getEnv("LLM_PROVIDER", "gemini"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		// Language defaults: describe in Arabic, generate the prompt in English
		DescriptionLanguageCode: getEnv("DESCRIPTION_LANGUAGE", "ar"),
		PromptLanguageCode:      getEnv("PROMPT_LANGUAGE", "en"),

		// Intake defaults (10MB, 2048px longest side)
		MaxImageBytes:     getInt64Env("MAX_IMAGE_BYTES", 10*1024*1024),
		MaxImageDimension: getIntEnv("MAX_IMAGE_DIMENSION", 2048),

		KeystorePath: getEnv("KEYSTORE_PATH", "./data/keystore.json"),

		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 20),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ServerAPIKey returns the server-side fallback credential for the
// configured provider, if any was set via the environment.
func (c *Config) ServerAPIKey() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// DescriptionLanguage returns the full language name for the description output
func (c *Config) DescriptionLanguage() string {
	return LanguageName(c.DescriptionLanguageCode)
}

// PromptLanguage returns the full language name for the generation prompt output
func (c *Config) PromptLanguage() string {
	return LanguageName(c.PromptLanguageCode)
}

// DescriptionDir returns the text direction for the description language
func (c *Config) DescriptionDir() string {
	if rtlLanguageCodes[strings.ToLower(strings.TrimSpace(c.DescriptionLanguageCode))] {
		return "rtl"
	}
	return "ltr"
}

// LanguageName resolves a 2-letter language code to a full language name.
// Unknown codes are passed through as-is so full names also work.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if name, exists := languageCodeMap[strings.ToLower(code)]; exists {
		return name
	}
	return code
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64Env gets an int64 environment variable or returns a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
