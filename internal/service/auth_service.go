package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newsletter-press/internal/config"
	"github.com/rs/zerolog"
)

// authService gates the admin surface behind the configured password and
// hands out in-memory bearer session tokens. One active editor is assumed;
// this is deliberately not a hardened authentication scheme.
type authService struct {
	password   string
	sessionTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger

	mu       sync.Mutex
	sessions map[string]time.Time // token -> last seen
}

// newAuthService creates a new AuthService
func newAuthService(cfg *config.AdminConfig, log zerolog.Logger) *authService {
	return &authService{
		password:   cfg.Password,
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
		sessions:   make(map[string]time.Time),
		log:        log.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) Enabled() bool {
	return s.password != ""
}

func (s *authService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrAdminDisabled
	}
	if password != s.password {
		s.log.Warn().Msg("Admin login rejected")
		return "", ErrBadCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = s.now()
	s.mu.Unlock()

	s.log.Info().Msg("Admin logged in")
	return token, nil
}

func (s *authService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *authService) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lastSeen, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().Sub(lastSeen) > s.sessionTTL {
		delete(s.sessions, token)
		return false
	}
	s.sessions[token] = s.now()
	return true
}
