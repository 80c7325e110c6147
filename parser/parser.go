package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"image-prompt-service/models"
)

// ExtractJSONFromMarkdown extracts JSON from markdown code blocks.
// Providers occasionally wrap the object in ``` fences even when asked
// for a bare JSON response.
func ExtractJSONFromMarkdown(response string) string {
	startMarker := "```"
	endMarker := "```"

	startIdx := strings.Index(response, startMarker)
	if startIdx == -1 {
		// No code block found, try to find a JSON object directly
		startIdx = strings.Index(response, "{")
		if startIdx == -1 {
			return response
		}
		endIdx := strings.LastIndex(response, "}")
		if endIdx == -1 {
			return response
		}
		return strings.TrimSpace(response[startIdx : endIdx+1])
	}

	endIdx := strings.Index(response[startIdx+len(startMarker):], endMarker)
	if endIdx == -1 {
		return response
	}
	endIdx += startIdx + len(startMarker)

	content := response[startIdx+len(startMarker) : endIdx]

	// Remove the language identifier if present (e.g., "json")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) > 0 && (strings.TrimSpace(lines[0]) == "json" || strings.TrimSpace(lines[0]) == "") {
		content = strings.Join(lines[1:], "\n")
	}

	return strings.TrimSpace(content)
}

// ParseAnalysis parses the model response into the two-field result.
// Both fields must be present together; a partial object is an error.
func ParseAnalysis(response string) (*models.AnalysisResult, error) {
	cleaned := strings.TrimSpace(response)
	if cleaned == "" {
		return nil, errors.New("empty response")
	}

	jsonContent := ExtractJSONFromMarkdown(cleaned)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return nil, errors.New("failed to parse JSON response: " + err.Error())
	}

	if result.Description == "" {
		return nil, errors.New("description is required")
	}
	if result.Prompt == "" {
		return nil, errors.New("prompt is required")
	}
	return &result, nil
}
