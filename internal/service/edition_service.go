package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/repository"
	"github.com/newsletter-press/internal/validation"
	"github.com/rs/zerolog"
)

// editionService is the concrete implementation of EditionService
type editionService struct {
	repo      repository.EditionRepository
	converter *md.Converter
	now       func() time.Time
	log       zerolog.Logger
}

// newEditionService creates a new EditionService
func newEditionService(repo repository.EditionRepository, log zerolog.Logger) *editionService {
	return &editionService{
		repo:      repo,
		converter: md.NewConverter("", true, nil),
		now:       time.Now,
		log:       log.With().Str("service", "edition").Logger(),
	}
}

// load fetches the collection, degrading a malformed source to an empty
// collection after logging the diagnostic. Transport failures propagate.
func (s *editionService) load(ctx context.Context) (models.Collection, error) {
	editions, err := s.repo.Load(ctx)
	if errors.Is(err, repository.ErrMalformed) {
		s.log.Warn().Err(err).Msg("Backing file is malformed, serving empty collection")
		return models.Collection{}, nil
	}
	if err != nil {
		return nil, err
	}
	return editions, nil
}

func (s *editionService) List(ctx context.Context, filter ListFilter) (models.Collection, error) {
	editions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return editions.FilterLanguage(filter.Language).Filter(filter.Query).Sorted(), nil
}

func (s *editionService) Get(ctx context.Context, id string) (*models.Edition, error) {
	editions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := editions.FindByID(id)
	if !ok {
		return nil, ErrEditionNotFound
	}
	return &e, nil
}

func (s *editionService) LatestPublished(ctx context.Context, language string) (*models.Edition, error) {
	editions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := editions.LatestPublished(language)
	if !ok {
		return nil, ErrEditionNotFound
	}
	return &e, nil
}

func (s *editionService) Publish(ctx context.Context, in *models.EditionInput) (*models.Edition, error) {
	if errs := validation.ValidateEdition(in); len(errs) > 0 {
		return nil, errs
	}

	content := in.ContentMD
	if in.ContentHTML != "" {
		converted, err := s.converter.ConvertString(in.ContentHTML)
		if err != nil {
			return nil, fmt.Errorf("converting HTML content: %w", err)
		}
		content = converted
	}

	date, err := time.Parse(models.DateLayout, in.Date)
	if err != nil {
		// Unreachable after validation; kept as a guard
		return nil, validation.Errors{{Field: "date", Message: "date must be YYYY-MM-DD", Value: in.Date}}
	}
	language := strings.ToLower(strings.TrimSpace(in.Language))

	edition := models.Edition{
		EditionID: models.NewEditionID(date, language, s.now()),
		Date:      &date,
		Language:  language,
		Title:     in.Title,
		ContentMD: content,
		Published: in.Published,
	}

	editions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, editions.Prepend(edition)); err != nil {
		// The authored edition is handed back so the admin can refresh and
		// retry without retyping; nothing was persisted remotely.
		return &edition, err
	}

	s.log.Info().
		Str("edition_id", edition.EditionID).
		Str("language", edition.Language).
		Bool("published", edition.Published).
		Msg("Edition saved")

	return &edition, nil
}

func (s *editionService) ExportCSV(ctx context.Context, w io.Writer, query string) error {
	editions, err := s.load(ctx)
	if err != nil {
		return err
	}
	return repository.EncodeCollection(w, editions.Filter(query).Sorted())
}

func (s *editionService) ExportMarkdown(ctx context.Context, id string) (string, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# %s\n\n%s", e.Title, e.ContentMD), nil
}

func (s *editionService) Refresh() {
	s.repo.Refresh()
	s.log.Debug().Msg("Read cache invalidated")
}

func (s *editionService) Source() string {
	return s.repo.Source()
}
