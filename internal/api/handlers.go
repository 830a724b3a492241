package api

import (
	"context"
	"net/http"

	"sitegen/internal/preview"
	"sitegen/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// WebsiteGenerator produces a website from a validated prompt.
type WebsiteGenerator interface {
	GenerateWebsite(ctx context.Context, req types.GenerationRequest) (types.GenerationResult, error)
	ProviderName() string
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator WebsiteGenerator
	previews  *preview.Store
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator WebsiteGenerator, previews *preview.Store) *APIHandler {
	return &APIHandler{
		generator: generator,
		previews:  previews,
	}
}

// --- Structs for API Requests/Responses ---

// GenerateRequest is decoded loosely so a non-string prompt gets the prompt message
// rather than a generic decoding error.
type GenerateRequest struct {
	Prompt any `json:"prompt"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Type    string `json:"type,omitempty"`
}

const (
	msgInvalidBody      = "Invalid request body"
	msgMethodNotAllowed = "Method not allowed"
	msgGenerationFailed = "Website generation failed"
	msgPreviewNotFound  = "Preview not found"
)

// --- API Handlers ---

// POST /api/generate-website
func (h *APIHandler) GenerateWebsite(c *gin.Context) {
	var body GenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}

	prompt, _ := body.Prompt.(string)
	req, err := types.NewGenerationRequest(prompt)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	result, err := h.generator.GenerateWebsite(c.Request.Context(), req)
	if err != nil {
		c.JSON(errorResponse(err))
		return
	}

	h.previews.Put(result)
	c.JSON(http.StatusOK, result)
}

// OPTIONS /api/generate-website
func (h *APIHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// MethodNotAllowed answers any method a route does not serve.
func (h *APIHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
}

// GET /preview/:projectId
func (h *APIHandler) Preview(c *gin.Context) {
	projectID := c.Param("projectId")
	result, ok := h.previews.Get(projectID)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgPreviewNotFound})
		return
	}

	title := ""
	if c.Query("window") != "" {
		title = preview.WindowTitle
	}
	doc, err := preview.Render(result, title)
	if err != nil {
		log.Error().Err(err).Str("project_id", projectID).Msg("failed to render preview")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render preview"})
		return
	}

	c.Header("Content-Security-Policy", preview.CSP)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// GET /health
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": h.generator.ProviderName()})
}

// errorResponse maps a generation failure onto its HTTP status and body.
func errorResponse(err error) (int, ErrorResponse) {
	genErr, ok := types.AsGenerationError(err)
	if !ok {
		return http.StatusInternalServerError, ErrorResponse{
			Error:   msgGenerationFailed,
			Details: err.Error(),
			Type:    "API_ERROR",
		}
	}

	switch genErr.Kind {
	case types.KindInvalidRequest, types.KindUpstreamReported:
		return http.StatusBadRequest, ErrorResponse{Error: genErr.Message}
	default:
		details := genErr.Message
		if details == "" {
			details = genErr.Error()
		}
		return http.StatusInternalServerError, ErrorResponse{
			Error:   msgGenerationFailed,
			Details: details,
			Type:    string(genErr.Kind),
		}
	}
}
