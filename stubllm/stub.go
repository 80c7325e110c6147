package stubllm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Client is a deterministic, no-network provider stub intended for CI
// and local end-to-end runs. It returns schema-valid JSON so the parse
// and presentation paths are exercised without a credential.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

func (c *Client) AnalyzeImage(_ context.Context, _ string, imageData []byte, mimeType string) (string, error) {
	// Deterministic per-input so runs are stable in CI.
	sum := sha256.Sum256(imageData)
	short := hex.EncodeToString(sum[:8])

	out := map[string]string{
		"description": fmt.Sprintf("Stubbed description of a %s image (%d bytes, %s).", mimeType, len(imageData), short),
		"prompt":      fmt.Sprintf("A detailed studio photograph, stub fingerprint %s, high quality, 4k", short),
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Client) Translate(_ context.Context, _ string, text, targetLanguage string) (string, error) {
	return fmt.Sprintf("[%s] %s", targetLanguage, text), nil
}
