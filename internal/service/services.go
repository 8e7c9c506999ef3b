package service

import (
	"context"
	"errors"
	"io"

	"github.com/newsletter-press/internal/config"
	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/repository"
	"github.com/rs/zerolog"
)

var (
	// ErrEditionNotFound marks a lookup that matched nothing
	ErrEditionNotFound = errors.New("service: edition not found")

	// ErrBadCredentials marks a failed admin password check
	ErrBadCredentials = errors.New("service: wrong password")

	// ErrAdminDisabled marks admin operations with no password configured
	ErrAdminDisabled = errors.New("service: admin access is not configured")
)

// ListFilter narrows a collection listing
type ListFilter struct {
	Query    string
	Language string
}

// EditionService defines edition querying, authoring and export
type EditionService interface {
	// List returns the collection in display order, optionally filtered
	List(ctx context.Context, filter ListFilter) (models.Collection, error)

	// Get returns a single edition by ID
	Get(ctx context.Context, id string) (*models.Edition, error)

	// LatestPublished returns the most recent published edition for a language
	LatestPublished(ctx context.Context, language string) (*models.Edition, error)

	// Publish authors a new edition, prepends it and persists the whole
	// collection. On a save failure the built edition is still returned so
	// the caller can retry after a refresh.
	Publish(ctx context.Context, in *models.EditionInput) (*models.Edition, error)

	// ExportCSV writes the (optionally filtered) collection in the
	// persisted tabular format
	ExportCSV(ctx context.Context, w io.Writer, query string) error

	// ExportMarkdown renders a single edition as a markdown document
	ExportMarkdown(ctx context.Context, id string) (string, error)

	// Refresh invalidates the read cache immediately
	Refresh()

	// Source describes the backing store for diagnostics
	Source() string
}

// AuthService defines the admin session gate
type AuthService interface {
	// Login checks the configured password and returns a session token
	Login(password string) (string, error)

	// Logout ends a session; unknown tokens are ignored
	Logout(token string)

	// Valid reports whether a token belongs to a live session
	Valid(token string) bool

	// Enabled reports whether an admin password is configured at all
	Enabled() bool
}

// Services holds all service interfaces
type Services struct {
	Edition EditionService
	Auth    AuthService
}

// NewServices creates all services with their dependencies
func NewServices(repo repository.EditionRepository, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Edition: newEditionService(repo, log),
		Auth:    newAuthService(&cfg.Admin, log),
	}
}
