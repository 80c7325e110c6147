package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"image-prompt-service/keystore"
	"image-prompt-service/llm"
	"image-prompt-service/models"
	"image-prompt-service/parser"

	"github.com/apex/log"
)

// Precondition failures. These never mutate the session state.
var (
	ErrNoAPIKey = errors.New("api key is not set")
	ErrNoImage  = errors.New("no image selected")
	ErrNoResult = errors.New("no analysis result")
	ErrBusy     = errors.New("analysis already in progress")
)

// User-facing messages. The raw provider failure is only logged.
const (
	MsgMissingAPIKey = "Please enter your API key before analyzing."
	MsgInvalidAPIKey = "The API key was rejected. Please check that it is correct and active."
	MsgAnalysisFail  = "Analysis failed. Please check that your API key is valid and has remaining quota, then try again."
)

// invalidKeyMarkers are matched against the raw failure text to
// classify credential rejections: an HTTP 401/403 indicator or a
// provider-specific invalid-key marker.
var invalidKeyMarkers = []string{
	"status 403",
	"status 401",
	"API key not valid",
	"API_KEY_INVALID",
	"Incorrect API key",
}

// Session holds the component state: credential, active image, last
// result, last error and the busy flag. One instance serves the page;
// the mutex plus the busy flag guarantee at most one outstanding
// inference call.
type Session struct {
	mu       sync.Mutex
	store    keystore.Store
	client   llm.Client
	fallback string

	apiKey   string
	image    *models.SourceImage
	result   *models.AnalysisResult
	errorMsg string
	busy     bool
}

// New creates a session, initializing the credential from the store.
// A store read failure leaves the credential empty rather than failing
// startup; validity is only ever discovered by calling the provider.
func New(store keystore.Store, client llm.Client, fallbackKey string) *Session {
	key, err := store.Load()
	if err != nil {
		log.WithError(err).Warn("Failed to load stored API key")
		key = ""
	}
	return &Session{
		store:    store,
		client:   client,
		fallback: fallbackKey,
		apiKey:   key,
	}
}

// APIKey returns the current user-supplied credential
func (s *Session) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey
}

// SetAPIKey updates the credential in memory and writes it through to
// the store. The in-memory value is updated even when the write fails,
// so the running session keeps working with the edited key.
func (s *Session) SetAPIKey(key string) error {
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
	return s.store.Save(key)
}

// SetImage replaces the active image and unconditionally clears any
// prior result and error, so stale output is never shown against a
// new image.
func (s *Session) SetImage(img *models.SourceImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = img
	s.result = nil
	s.errorMsg = ""
}

// State returns a snapshot of the component state
func (s *Session) State() models.StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.StateResponse{
		APIKeySet: strings.TrimSpace(s.apiKey) != "" || strings.TrimSpace(s.fallback) != "",
		HasImage:  s.image != nil,
		Busy:      s.busy,
		Result:    s.result,
		Error:     s.errorMsg,
	}
}

// Analyze runs one inference call against the active image.
// Preconditions are checked synchronously: a missing credential or
// image aborts without touching the busy flag or the error state.
// On any failure the classified message becomes the session error;
// the busy flag clears on every exit path.
func (s *Session) Analyze(ctx context.Context) (*models.AnalysisResult, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	key := s.effectiveKeyLocked()
	if key == "" {
		s.mu.Unlock()
		return nil, ErrNoAPIKey
	}
	if s.image == nil {
		s.mu.Unlock()
		return nil, ErrNoImage
	}
	s.busy = true
	s.errorMsg = ""
	img := s.image
	s.mu.Unlock()

	text, err := s.client.AnalyzeImage(ctx, key, img.Data, img.MimeType)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		log.WithError(err).Errorf("Image analysis failed (provider=%s)", s.client.SourceName())
		s.errorMsg = ClassifyFailure(err)
		return nil, err
	}

	result, err := parser.ParseAnalysis(text)
	if err != nil {
		log.WithError(err).Error("Failed to parse analysis response")
		s.errorMsg = MsgAnalysisFail
		return nil, err
	}

	s.result = result
	return result, nil
}

// Translate re-renders the current description into the target
// language. It shares the busy flag with Analyze so at most one
// provider call is outstanding at a time.
func (s *Session) Translate(ctx context.Context, targetLanguage string) (string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrBusy
	}
	key := s.effectiveKeyLocked()
	if key == "" {
		s.mu.Unlock()
		return "", ErrNoAPIKey
	}
	if s.result == nil {
		s.mu.Unlock()
		return "", ErrNoResult
	}
	s.busy = true
	s.errorMsg = ""
	description := s.result.Description
	s.mu.Unlock()

	text, err := s.client.Translate(ctx, key, description, targetLanguage)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		log.WithError(err).Errorf("Translation failed (provider=%s)", s.client.SourceName())
		s.errorMsg = ClassifyFailure(err)
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// effectiveKeyLocked prefers the user-supplied credential over the
// server-side fallback. Callers must hold the mutex.
func (s *Session) effectiveKeyLocked() string {
	if key := strings.TrimSpace(s.apiKey); key != "" {
		return key
	}
	return strings.TrimSpace(s.fallback)
}

// ClassifyFailure maps a raw provider failure onto the user-facing
// error taxonomy: credential rejections get the invalid-key message,
// everything else the generic analysis failure message.
func ClassifyFailure(err error) string {
	msg := err.Error()
	for _, marker := range invalidKeyMarkers {
		if strings.Contains(msg, marker) {
			return MsgInvalidAPIKey
		}
	}
	return MsgAnalysisFail
}
