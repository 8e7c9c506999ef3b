package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsletter-press/internal/i18n"
	"github.com/newsletter-press/internal/service"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// ExportCSV handles GET /v1/exports?q=...
// Streams the (optionally filtered) record in the persisted tabular format.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	query := c.Query("q")
	filename := i18n.T(c.Query("language"), "export_filename")

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.services.Edition.ExportCSV(c.Request.Context(), c.Writer, query); err != nil {
		// Headers may already be out; log and stop rather than re-render
		h.log.Error().Err(err).Msg("CSV export failed")
		return
	}
}

// ExportMarkdown handles GET /v1/editions/:id/export
// Renders a single edition as a two-part markdown document.
func (h *ExportHandler) ExportMarkdown(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.services.Edition.ExportMarkdown(c.Request.Context(), id)
	if errors.Is(err, service.ErrEditionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T(c.Query("language"), "not_found")})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("edition_id", id).Msg("Markdown export failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to export edition"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+id+".md")
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
}
