package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"image-prompt-service/llm"
)

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type geminiRequest struct {
	GenerationConfig generationConfig `json:"generationConfig,omitempty"`
	Contents         []content        `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the Gemini generateContent API over plain HTTP
type Client struct {
	model       string
	instruction string
	http        *http.Client
}

// NewClient creates a Gemini client for the given model. The fixed
// analysis instruction is sent with every image request.
func NewClient(model, instruction string) *Client {
	return &Client{
		model:       model,
		instruction: instruction,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *Client) SourceName() string {
	return "Gemini"
}

// AnalyzeImage sends the instruction plus the inline image and returns
// the first text part of the response.
func (c *Client) AnalyzeImage(ctx context.Context, apiKey string, imageData []byte, mimeType string) (string, error) {
	reqBody := geminiRequest{
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
		},
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: c.instruction},
					{
						InlineData: &inlineData{
							MimeType: mimeType,
							Data:     base64.StdEncoding.EncodeToString(imageData),
						},
					},
				},
			},
		},
	}
	return c.generateContent(ctx, apiKey, reqBody)
}

// Translate re-renders text into the target language
func (c *Client) Translate(ctx context.Context, apiKey, text, targetLanguage string) (string, error) {
	prompt := llm.TranslateInstruction(text, targetLanguage)
	reqBody := geminiRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: prompt},
				},
			},
		},
	}
	return c.generateContent(ctx, apiKey, reqBody)
}

func (c *Client) generateContent(ctx context.Context, apiKey string, body geminiRequest) (string, error) {
	endpoint := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", c.model, apiKey)

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The body carries provider markers like API_KEY_INVALID that
		// callers match on to classify credential rejections.
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var gr geminiResponse
	if err := json.Unmarshal(bodyBytes, &gr); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	for _, p := range gr.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text, nil
		}
	}
	return "", fmt.Errorf("no text part in response")
}
