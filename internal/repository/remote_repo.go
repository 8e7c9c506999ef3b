package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/remote"
	"github.com/rs/zerolog"
)

// remoteRepo persists the collection in a remote-hosted file with
// sha-based optimistic concurrency, mirroring every save to a local file.
// Reads are cached for a short interval to bound request volume.
type remoteRepo struct {
	client *remote.Client
	path   string
	mirror EditionRepository
	ttl    time.Duration
	log    zerolog.Logger

	mu       sync.Mutex
	cached   models.Collection
	cachedAt time.Time
	hasCache bool
	sha      string
}

// NewRemoteRepo creates a repository backed by the remote file store.
// mirror receives a copy of every save; it is not consulted on load.
func NewRemoteRepo(client *remote.Client, path string, mirror EditionRepository, ttl time.Duration, log zerolog.Logger) EditionRepository {
	return &remoteRepo{
		client: client,
		path:   path,
		mirror: mirror,
		ttl:    ttl,
		log:    log.With().Str("repository", "remote").Logger(),
	}
}

func (r *remoteRepo) Load(ctx context.Context) (models.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasCache && time.Since(r.cachedAt) < r.ttl {
		return r.cached.Clone(), nil
	}

	file, err := r.client.Fetch(ctx, r.path)
	if errors.Is(err, remote.ErrNotFound) {
		// No data yet: distinguished empty result, not a failure
		r.setCache(models.Collection{}, "")
		return models.Collection{}, nil
	}
	if err != nil {
		return nil, err
	}

	editions, err := DecodeCollection(bytes.NewReader(file.Content))
	if err != nil {
		// Keep the revision so a subsequent save can still replace the
		// malformed file conditionally.
		r.setCache(models.Collection{}, file.SHA)
		r.log.Error().Err(err).Str("path", r.path).Msg("Failed to parse remote CSV")
		return models.Collection{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	r.setCache(editions, file.SHA)
	return editions.Clone(), nil
}

func (r *remoteRepo) Save(ctx context.Context, c models.Collection) error {
	// Local mirror first. A remote failure afterwards is not rolled back;
	// the two targets can diverge until the next successful save.
	if err := r.mirror.Save(ctx, c); err != nil {
		r.log.Warn().Err(err).Msg("Local mirror write failed")
	}

	var buf bytes.Buffer
	if err := EncodeCollection(&buf, c); err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	r.mu.Lock()
	sha := r.sha
	r.mu.Unlock()

	message := fmt.Sprintf("Update %s at %s", r.path, time.Now().UTC().Format(time.RFC3339))
	newSHA, err := r.client.Put(ctx, r.path, buf.Bytes(), message, sha)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.setCache(c.Clone(), newSHA)
	r.mu.Unlock()

	r.log.Info().Str("path", r.path).Int("rows", len(c)).Str("sha", newSHA).Msg("Collection saved to remote store")
	return nil
}

// Refresh drops the cached read so the next load hits the remote store
func (r *remoteRepo) Refresh() {
	r.mu.Lock()
	r.hasCache = false
	r.mu.Unlock()
}

func (r *remoteRepo) Source() string {
	return "remote file: " + r.path
}

// setCache records a collection and revision; callers hold r.mu except
// inside Load/Save where it is already held.
func (r *remoteRepo) setCache(c models.Collection, sha string) {
	r.cached = c
	r.cachedAt = time.Now()
	r.hasCache = true
	r.sha = sha
}
