package llm

import "context"

// Client abstracts the multimodal provider behind the analyzer.
// The credential is supplied per call because it is owned by the end
// user and can change between requests.
type Client interface {
	// AnalyzeImage sends the image and the analysis instruction in one
	// request and returns the raw text payload of the response.
	AnalyzeImage(ctx context.Context, apiKey string, imageData []byte, mimeType string) (string, error)
	// Translate re-renders text into a target human language name (e.g., "German").
	Translate(ctx context.Context, apiKey, text, targetLanguage string) (string, error)
	// SourceName returns a short provider label for logging (e.g., "Gemini").
	SourceName() string
}
