package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsletter-press/internal/i18n"
	"github.com/newsletter-press/internal/remote"
	"github.com/newsletter-press/internal/service"
	"github.com/rs/zerolog"
)

// EditionHandler handles the reader-facing edition endpoints
type EditionHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEditionHandler creates a new EditionHandler
func NewEditionHandler(services *service.Services, log zerolog.Logger) *EditionHandler {
	return &EditionHandler{
		services: services,
		log:      log.With().Str("handler", "edition").Logger(),
	}
}

// ListEditions handles GET /v1/editions?q=...&language=...
// Returns the record in display order: newest first, undated last.
func (h *EditionHandler) ListEditions(c *gin.Context) {
	filter := service.ListFilter{
		Query:    c.Query("q"),
		Language: c.Query("language"),
	}

	editions, err := h.services.Edition.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"editions": editions,
		"count":    len(editions),
	})
}

// LatestEdition handles GET /v1/editions/latest?language=fr|en
func (h *EditionHandler) LatestEdition(c *gin.Context) {
	language := strings.ToLower(c.DefaultQuery("language", i18n.DefaultLanguage))

	edition, err := h.services.Edition.LatestPublished(c.Request.Context(), language)
	if errors.Is(err, service.ErrEditionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T(language, "empty")})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, edition)
}

// GetEdition handles GET /v1/editions/:id
func (h *EditionHandler) GetEdition(c *gin.Context) {
	id := c.Param("id")

	edition, err := h.services.Edition.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrEditionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T(c.Query("language"), "not_found")})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, edition)
}

// respondError maps store failures to HTTP statuses. Everything stays a
// rendered message; no failure takes the whole service down.
func (h *EditionHandler) respondError(c *gin.Context, err error) {
	var apiErr *remote.APIError
	switch {
	case errors.Is(err, remote.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		h.log.Error().Err(err).Msg("Remote store error")
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
	default:
		h.log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to reach the backing store"})
	}
}
