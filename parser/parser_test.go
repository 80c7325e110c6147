package parser

import (
	"testing"

	"image-prompt-service/models"
)

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
		expected *models.AnalysisResult
	}{
		{
			name:     "valid JSON response",
			response: `{"description": "A quiet harbor at dawn with small fishing boats.", "prompt": "fishing harbor at dawn, soft golden light, photorealistic, 4k"}`,
			wantErr:  false,
			expected: &models.AnalysisResult{
				Description: "A quiet harbor at dawn with small fishing boats.",
				Prompt:      "fishing harbor at dawn, soft golden light, photorealistic, 4k",
			},
		},
		{
			name:     "valid JSON with embedded line breaks",
			response: `{"description": "First paragraph.\n\nSecond paragraph.", "prompt": "a prompt"}`,
			wantErr:  false,
			expected: &models.AnalysisResult{
				Description: "First paragraph.\n\nSecond paragraph.",
				Prompt:      "a prompt",
			},
		},
		{
			name:     "JSON wrapped in markdown fences",
			response: "```json\n{\"description\": \"A red bicycle leaning on a wall.\", \"prompt\": \"red bicycle against a white wall, minimalist\"}\n```",
			wantErr:  false,
			expected: &models.AnalysisResult{
				Description: "A red bicycle leaning on a wall.",
				Prompt:      "red bicycle against a white wall, minimalist",
			},
		},
		{
			name:     "JSON with surrounding commentary",
			response: "Here is the analysis:\n{\"description\": \"Snowy mountains.\", \"prompt\": \"snowy mountain range, alpenglow\"}\nHope this helps!",
			wantErr:  false,
			expected: &models.AnalysisResult{
				Description: "Snowy mountains.",
				Prompt:      "snowy mountain range, alpenglow",
			},
		},
		{
			name:     "missing description",
			response: `{"prompt": "a prompt"}`,
			wantErr:  true,
			expected: nil,
		},
		{
			name:     "missing prompt",
			response: `{"description": "a description"}`,
			wantErr:  true,
			expected: nil,
		},
		{
			name:     "invalid JSON",
			response: `{"description": "Unclosed`,
			wantErr:  true,
			expected: nil,
		},
		{
			name:     "empty response",
			response: "",
			wantErr:  true,
			expected: nil,
		},
		{
			name:     "whitespace only",
			response: "   \n\t  ",
			wantErr:  true,
			expected: nil,
		},
		{
			name:     "plain prose instead of JSON",
			response: "The image shows a sunset over the ocean.",
			wantErr:  true,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseAnalysis(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAnalysis() expected error, got result %+v", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnalysis() unexpected error: %v", err)
			}
			if result.Description != tt.expected.Description {
				t.Errorf("Description = %q, want %q", result.Description, tt.expected.Description)
			}
			if result.Prompt != tt.expected.Prompt {
				t.Errorf("Prompt = %q, want %q", result.Prompt, tt.expected.Prompt)
			}
		})
	}
}

func TestExtractJSONFromMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare JSON",
			input:    `{"description": "x", "prompt": "y"}`,
			expected: `{"description": "x", "prompt": "y"}`,
		},
		{
			name:     "fenced with language identifier",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "fenced without language identifier",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "no JSON at all",
			input:    "just some text",
			expected: "just some text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSONFromMarkdown(tt.input)
			if got != tt.expected {
				t.Errorf("ExtractJSONFromMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}
