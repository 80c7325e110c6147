package openai

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

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageURL struct {
	URL string `json:"url"`
}

type imageContent struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls the OpenAI chat completions API with vision input
type Client struct {
	model       string
	instruction string
	http        *http.Client
}

// NewClient creates an OpenAI client for the given model. The fixed
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
	return "ChatGPT"
}

// AnalyzeImage sends the instruction plus the image as a data URI and
// returns the message content of the first choice.
func (c *Client) AnalyzeImage(ctx context.Context, apiKey string, imageData []byte, mimeType string) (string, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{
				Role: "user",
				Content: []any{
					textContent{Type: "text", Text: c.instruction},
					imageContent{Type: "image_url", ImageURL: imageURL{URL: dataURI}},
				},
			},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	return c.chatCompletion(ctx, apiKey, reqBody)
}

// Translate re-renders text into the target language
func (c *Client) Translate(ctx context.Context, apiKey, text, targetLanguage string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{
				Role:    "user",
				Content: llm.TranslateInstruction(text, targetLanguage),
			},
		},
	}
	return c.chatCompletion(ctx, apiKey, reqBody)
}

func (c *Client) chatCompletion(ctx context.Context, apiKey string, body chatRequest) (string, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}
