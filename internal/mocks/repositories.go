package mocks

import (
	"context"
	"sync"

	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/repository"
)

// MockEditionRepository is an in-memory mock of EditionRepository
type MockEditionRepository struct {
	LoadFunc func(ctx context.Context) (models.Collection, error)
	SaveFunc func(ctx context.Context, c models.Collection) error

	mu           sync.Mutex
	Collection   models.Collection
	Saved        []models.Collection
	RefreshCalls int
}

// Verify interface compliance
var _ repository.EditionRepository = (*MockEditionRepository)(nil)

func NewMockEditionRepository() *MockEditionRepository {
	return &MockEditionRepository{
		Collection: models.Collection{},
	}
}

func (m *MockEditionRepository) Load(ctx context.Context) (models.Collection, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Collection.Clone(), nil
}

func (m *MockEditionRepository) Save(ctx context.Context, c models.Collection) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Collection = c.Clone()
	m.Saved = append(m.Saved, c.Clone())
	return nil
}

func (m *MockEditionRepository) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshCalls++
}

func (m *MockEditionRepository) Source() string {
	return "mock repository"
}
