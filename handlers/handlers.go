package handlers

import (
	_ "embed"
	"errors"
	"net/http"

	"image-prompt-service/config"
	"image-prompt-service/imageutil"
	"image-prompt-service/models"
	"image-prompt-service/session"
	"image-prompt-service/version"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML string

// Handlers represents the HTTP handlers over the session
type Handlers struct {
	cfg  *config.Config
	sess *session.Session
}

// NewHandlers creates new HTTP handlers
func NewHandlers(cfg *config.Config, sess *session.Session) *Handlers {
	return &Handlers{cfg: cfg, sess: sess}
}

// ServePage serves the embedded single page
func (h *Handlers) ServePage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, indexHTML)
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "image-prompt-service",
		"version": version.Version,
	})
}

// GetState returns the full component state for the page
func (h *Handlers) GetState(c *gin.Context) {
	state := h.sess.State()
	state.DescriptionDir = h.cfg.DescriptionDir()
	c.JSON(http.StatusOK, state)
}

// GetKey returns the stored credential
func (h *Handlers) GetKey(c *gin.Context) {
	c.JSON(http.StatusOK, models.KeyResponse{APIKey: h.sess.APIKey()})
}

// PutKey updates the credential, writing it through to the keystore.
// Every edit on the page lands here; there is no separate save action.
func (h *Handlers) PutKey(c *gin.Context) {
	var req models.KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.sess.SetAPIKey(req.APIKey); err != nil {
		log.WithError(err).Error("Failed to persist API key")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save API key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// PutImage replaces the active image. The payload is a base64 data URI
// from the page's file picker; replacing the image clears any prior
// result and error.
func (h *Handlers) PutImage(c *gin.Context) {
	var req models.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	mimeType, data, err := imageutil.ParseDataURI(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid image data"})
		return
	}
	if !imageutil.AllowedType(mimeType) {
		c.JSON(http.StatusUnsupportedMediaType, models.ErrorResponse{Error: "Unsupported image type"})
		return
	}
	if int64(len(data)) > h.cfg.MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Image exceeds the maximum allowed size"})
		return
	}

	data, mimeType, err = imageutil.Normalize(data, mimeType, h.cfg.MaxImageDimension)
	if err != nil {
		log.WithError(err).Warn("Failed to decode uploaded image")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid image data"})
		return
	}

	h.sess.SetImage(&models.SourceImage{Data: data, MimeType: mimeType})

	state := h.sess.State()
	state.DescriptionDir = h.cfg.DescriptionDir()
	c.JSON(http.StatusOK, state)
}

// Analyze runs one inference call against the active image
func (h *Handlers) Analyze(c *gin.Context) {
	result, err := h.sess.Analyze(c.Request.Context())
	if err != nil {
		h.respondCallError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Translate re-renders the current description into another language
func (h *Handlers) Translate(c *gin.Context) {
	var req models.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	language := config.LanguageName(req.Language)
	text, err := h.sess.Translate(c.Request.Context(), language)
	if err != nil {
		h.respondCallError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TranslateResponse{Description: text, Language: language})
}

// respondCallError maps session errors onto HTTP responses. A missing
// credential is a blocking notice; a missing image or result is a
// silent no-op.
func (h *Handlers) respondCallError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrBusy):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Analysis already in progress"})
	case errors.Is(err, session.ErrNoAPIKey):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: session.MsgMissingAPIKey})
	case errors.Is(err, session.ErrNoImage), errors.Is(err, session.ErrNoResult):
		c.Status(http.StatusNoContent)
	default:
		// The classified user-facing message is already on the session.
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: h.sess.State().Error})
	}
}
