package models

// AnalysisResult is the two-field payload the model must return:
// a descriptive passage and an image-generation prompt. Both fields
// are required together; a partial result is treated as a parse failure.
type AnalysisResult struct {
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// SourceImage is the active image held by a session: decoded payload
// plus the MIME type declared by its data URI.
type SourceImage struct {
	Data     []byte
	MimeType string
}

// ImageRequest carries a base64 data URI from the upload control
type ImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// KeyRequest carries the user-supplied API credential
type KeyRequest struct {
	APIKey string `json:"api_key"`
}

// KeyResponse returns the stored credential to the page
type KeyResponse struct {
	APIKey string `json:"api_key"`
}

// TranslateRequest asks for the current description in another language
type TranslateRequest struct {
	Language string `json:"language" binding:"required"`
}

// TranslateResponse carries the re-rendered description
type TranslateResponse struct {
	Description string `json:"description"`
	Language    string `json:"language"`
}

// StateResponse is the full component state rendered by the page
type StateResponse struct {
	APIKeySet      bool            `json:"api_key_set"`
	HasImage       bool            `json:"has_image"`
	Busy           bool            `json:"busy"`
	Result         *AnalysisResult `json:"result,omitempty"`
	Error          string          `json:"error,omitempty"`
	DescriptionDir string          `json:"description_dir"`
}

// ErrorResponse is the generic error payload
type ErrorResponse struct {
	Error string `json:"error"`
}
