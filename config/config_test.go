package config

import (
	"testing"
)

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"en", "English"},
		{"ar", "Arabic"},
		{"AR", "Arabic"},
		{" de ", "German"},
		{"Klingon", "Klingon"}, // unknown codes pass through
		{"", ""},
	}

	for _, tt := range tests {
		if got := LanguageName(tt.code); got != tt.expected {
			t.Errorf("LanguageName(%q) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestDescriptionDir(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"ar", "rtl"},
		{"he", "rtl"},
		{"fa", "rtl"},
		{"en", "ltr"},
		{"de", "ltr"},
		{"unknown", "ltr"},
	}

	for _, tt := range tests {
		cfg := &Config{DescriptionLanguageCode: tt.code}
		if got := cfg.DescriptionDir(); got != tt.expected {
			t.Errorf("DescriptionDir(%q) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "MAX_IMAGE_BYTES", "DESCRIPTION_LANGUAGE", "PROMPT_LANGUAGE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port == "" {
		t.Error("Port default missing")
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("LLMProvider = %q, want gemini", cfg.LLMProvider)
	}
	if cfg.MaxImageBytes != 10*1024*1024 {
		t.Errorf("MaxImageBytes = %d, want 10MB", cfg.MaxImageBytes)
	}
	if cfg.DescriptionLanguage() != "Arabic" {
		t.Errorf("DescriptionLanguage = %q, want Arabic", cfg.DescriptionLanguage())
	}
	if cfg.PromptLanguage() != "English" {
		t.Errorf("PromptLanguage = %q, want English", cfg.PromptLanguage())
	}
}
