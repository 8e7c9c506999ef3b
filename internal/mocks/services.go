package mocks

import (
	"context"
	"io"

	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/service"
)

// MockEditionService is a mock implementation of EditionService
type MockEditionService struct {
	ListFunc            func(ctx context.Context, filter service.ListFilter) (models.Collection, error)
	GetFunc             func(ctx context.Context, id string) (*models.Edition, error)
	LatestPublishedFunc func(ctx context.Context, language string) (*models.Edition, error)
	PublishFunc         func(ctx context.Context, in *models.EditionInput) (*models.Edition, error)

	Published    []*models.Edition
	RefreshCalls int
}

// Verify interface compliance
var _ service.EditionService = (*MockEditionService)(nil)

func NewMockEditionService() *MockEditionService {
	return &MockEditionService{}
}

func (m *MockEditionService) List(ctx context.Context, filter service.ListFilter) (models.Collection, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return models.Collection{}, nil
}

func (m *MockEditionService) Get(ctx context.Context, id string) (*models.Edition, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, service.ErrEditionNotFound
}

func (m *MockEditionService) LatestPublished(ctx context.Context, language string) (*models.Edition, error) {
	if m.LatestPublishedFunc != nil {
		return m.LatestPublishedFunc(ctx, language)
	}
	return nil, service.ErrEditionNotFound
}

func (m *MockEditionService) Publish(ctx context.Context, in *models.EditionInput) (*models.Edition, error) {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, in)
	}
	e := &models.Edition{
		EditionID: "mock-edition",
		Language:  in.Language,
		Title:     in.Title,
		ContentMD: in.ContentMD,
		Published: in.Published,
	}
	m.Published = append(m.Published, e)
	return e, nil
}

func (m *MockEditionService) ExportCSV(ctx context.Context, w io.Writer, query string) error {
	return nil
}

func (m *MockEditionService) ExportMarkdown(ctx context.Context, id string) (string, error) {
	e, err := m.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return "# " + e.Title + "\n\n" + e.ContentMD, nil
}

func (m *MockEditionService) Refresh() {
	m.RefreshCalls++
}

func (m *MockEditionService) Source() string {
	return "mock service"
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	Tokens   map[string]bool
	Password string
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Tokens:   make(map[string]bool),
		Password: "secret",
	}
}

func (m *MockAuthService) Enabled() bool {
	return m.Password != ""
}

func (m *MockAuthService) Login(password string) (string, error) {
	if !m.Enabled() {
		return "", service.ErrAdminDisabled
	}
	if password != m.Password {
		return "", service.ErrBadCredentials
	}
	m.Tokens["mock-token"] = true
	return "mock-token", nil
}

func (m *MockAuthService) Logout(token string) {
	delete(m.Tokens, token)
}

func (m *MockAuthService) Valid(token string) bool {
	return m.Tokens[token]
}
