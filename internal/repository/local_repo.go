package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/newsletter-press/internal/models"
	"github.com/rs/zerolog"
)

// localRepo persists the collection in a CSV file on disk
type localRepo struct {
	path string
	log  zerolog.Logger
}

// NewLocalRepo creates a repository backed by a local CSV file
func NewLocalRepo(path string, log zerolog.Logger) EditionRepository {
	return &localRepo{
		path: path,
		log:  log.With().Str("repository", "local").Logger(),
	}
}

func (r *localRepo) Load(ctx context.Context) (models.Collection, error) {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return models.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", r.path, err)
	}
	defer f.Close()

	editions, err := DecodeCollection(f)
	if err != nil {
		r.log.Error().Err(err).Str("file", r.path).Msg("Failed to parse local CSV")
		return models.Collection{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return editions, nil
}

func (r *localRepo) Save(ctx context.Context, c models.Collection) error {
	var buf bytes.Buffer
	if err := EncodeCollection(&buf, c); err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	// Write-then-rename so a crash mid-save never truncates the file
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".editions-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", r.path, err)
	}

	r.log.Debug().Str("file", r.path).Int("rows", len(c)).Msg("Collection saved")
	return nil
}

// Refresh is a no-op: local reads are never cached
func (r *localRepo) Refresh() {}

func (r *localRepo) Source() string {
	return "local file: " + r.path
}
