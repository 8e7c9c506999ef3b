package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/remote"
	"github.com/newsletter-press/internal/service"
	"github.com/newsletter-press/internal/validation"
	"github.com/rs/zerolog"
)

// AdminHandler handles the password-gated authoring endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// Login handles POST /v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	token, err := h.services.Auth.Login(req.Password)
	switch {
	case errors.Is(err, service.ErrAdminDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
		return
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout handles POST /v1/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	h.services.Auth.Logout(token)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Refresh handles POST /v1/admin/refresh
// Drops the read cache so the next load sees the remote store's current state.
func (h *AdminHandler) Refresh(c *gin.Context) {
	h.services.Edition.Refresh()
	c.JSON(http.StatusOK, gin.H{"message": "cache invalidated"})
}

// CreateEdition handles POST /v1/editions
func (h *AdminHandler) CreateEdition(c *gin.Context) {
	var input models.EditionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	edition, err := h.services.Edition.Publish(c.Request.Context(), &input)

	var validationErrs validation.Errors
	var apiErr *remote.APIError
	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	case errors.Is(err, remote.ErrConflict):
		// Hand the authored edition back so the admin can refresh and retry
		h.log.Warn().Err(err).Msg("Save rejected by stale revision")
		c.JSON(http.StatusConflict, gin.H{
			"error":   "the stored file changed since the last read, refresh and retry",
			"edition": edition,
		})
		return
	case errors.As(err, &apiErr):
		h.log.Error().Err(err).Msg("Remote save failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error(), "edition": edition})
		return
	case err != nil:
		h.log.Error().Err(err).Msg("Save failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save edition", "edition": edition})
		return
	}

	c.JSON(http.StatusCreated, edition)
}
