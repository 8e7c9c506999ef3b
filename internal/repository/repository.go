package repository

import (
	"context"
	"errors"

	"github.com/newsletter-press/internal/config"
	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/remote"
	"github.com/rs/zerolog"
)

// ErrMalformed marks a source file that could not be parsed. Callers treat
// it as an empty collection plus a diagnostic, never a crash.
var ErrMalformed = errors.New("repository: malformed source file")

// EditionRepository defines the interface for edition persistence
type EditionRepository interface {
	// Load returns the full collection. A missing backing file is an empty
	// collection; a malformed one is an empty collection plus ErrMalformed.
	Load(ctx context.Context) (models.Collection, error)

	// Save rewrites the whole collection. There is no row-level update.
	Save(ctx context.Context, c models.Collection) error

	// Refresh invalidates any cached read immediately
	Refresh()

	// Source describes where the collection is read from, for diagnostics
	Source() string
}

// New selects the backing store: the remote file host when a repository
// target and credential are configured, otherwise the local file.
func New(cfg *config.Config, log zerolog.Logger) EditionRepository {
	local := NewLocalRepo(cfg.Store.LocalCSV, log)
	if !cfg.GitHub.Configured() {
		log.Info().Str("file", cfg.Store.LocalCSV).Msg("Remote store not configured, using local file")
		return local
	}
	client := remote.NewClient(&cfg.GitHub, log)
	log.Info().
		Str("repo", cfg.GitHub.Repo).
		Str("path", cfg.GitHub.Path).
		Str("branch", cfg.GitHub.Branch).
		Msg("Using remote file store")
	return NewRemoteRepo(client, cfg.GitHub.Path, local, cfg.Store.CacheTTL, log)
}
