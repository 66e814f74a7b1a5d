// internal/server/handlers.go
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "template-forge/internal/common/errors"
	"template-forge/internal/common/logger"
	"template-forge/internal/common/metrics"
	"template-forge/internal/common/observability"
	"template-forge/internal/generate"
	"template-forge/internal/publish"
	"template-forge/internal/template"
	"template-forge/internal/validation"
)

// Handler holds the request handlers for the service endpoints.
type Handler struct {
	generator *generate.Service
	publisher *publish.Service
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(generator *generate.Service, publisher *publish.Service, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		generator: generator,
		publisher: publisher,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Category string `json:"category,omitempty"`
}

type publishRequest struct {
	Content     string `json:"content"`
	Filename    string `json:"filename,omitempty"`
	Description string `json:"description,omitempty"`
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(c *gin.Context) {
	start := time.Now()

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewInvalidInputError("Request body must be JSON with a prompt field"))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), c.ClientIP(), req.Prompt, req.Category)
	elapsed := time.Since(start)
	metrics.PipelineDuration.WithLabelValues("generation").Observe(elapsed.Seconds())
	if err != nil {
		metrics.GenerationRequests.WithLabelValues("failure").Inc()
		if svcErr, ok := apperrors.AsServiceError(err); ok {
			metrics.GenerationFailures.WithLabelValues(string(svcErr.Code)).Inc()
		}
		h.obs.RecordRequest(c.Request.Context(), "generate", "failure")
		h.obs.RecordPipelineDuration(c.Request.Context(), elapsed, "failure")
		h.respondError(c, err)
		return
	}

	metrics.GenerationRequests.WithLabelValues("success").Inc()
	h.obs.RecordRequest(c.Request.Context(), "generate", "success")
	h.obs.RecordPipelineDuration(c.Request.Context(), elapsed, "success")
	resp := gin.H{"ok": true, "template": result.Template}
	if len(result.Warnings) > 0 {
		resp["warnings"] = result.Warnings
	}
	c.JSON(http.StatusOK, resp)
}

// Publish handles POST /api/publish.
func (h *Handler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewInvalidInputError("Request body must be JSON with a content field"))
		return
	}

	url, err := h.publisher.Publish(c.Request.Context(), c.ClientIP(), req.Content, req.Filename, req.Description)
	if err != nil {
		metrics.PublishRequests.WithLabelValues("failure").Inc()
		h.obs.RecordRequest(c.Request.Context(), "publish", "failure")
		h.respondError(c, err)
		return
	}

	metrics.PublishRequests.WithLabelValues("success").Inc()
	h.obs.RecordRequest(c.Request.Context(), "publish", "success")
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}

// Preview handles POST /api/preview: validates a template object and returns
// its Markdown export plus the rendered HTML.
func (h *Handler) Preview(c *gin.Context) {
	var raw any
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.respondError(c, apperrors.NewInvalidInputError("Request body must be a JSON template object"))
		return
	}

	tmpl, result := validation.CheckTemplate(raw)
	if !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": result.Errors})
		return
	}

	markdown := template.Markdown(tmpl)
	html, err := template.HTML(tmpl)
	if err != nil {
		h.respondError(c, apperrors.NewInternalError(err))
		return
	}

	resp := gin.H{"ok": true, "markdown": markdown, "html": html}
	if len(result.Warnings) > 0 {
		resp["warnings"] = result.Warnings
	}
	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError maps any pipeline failure to its classified status and safe
// message. Unclassified errors become a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	svcErr, ok := apperrors.AsServiceError(err)
	if !ok {
		svcErr = apperrors.NewInternalError(err)
	}

	if svcErr.Cause != nil {
		h.logger.Error("request failed", map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"code":       string(svcErr.Code),
			"cause":      svcErr.Cause.Error(),
		})
	}

	c.JSON(svcErr.Status, gin.H{"ok": false, "error": svcErr.Message})
}
