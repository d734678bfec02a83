// Package actions exposes the boundary operations the browser-facing surface
// invokes. Every operation follows the same fixed shape: read the session
// credential from the request's cookie jar, perform one exchange with the
// remote API, and return an action.Result: success with the typed payload,
// or a non-empty list of humanized errors. No operation throws, panics
// outward, or leaks a raw error.
package actions

import (
	"context"
	"net/http"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/finance"
	"github.com/centavo-app/centavo/internal/interfaces"
	"github.com/centavo-app/centavo/internal/session"
)

// Service bundles the collaborators each boundary operation needs.
type Service struct {
	api      interfaces.FinanceAPI
	sessions *session.Accessor
}

// NewService creates the boundary-operation service.
func NewService(api interfaces.FinanceAPI, sessions *session.Accessor) *Service {
	return &Service{api: api, sessions: sessions}
}

// Sessions exposes the session accessor for callers that resolve identity.
func (s *Service) Sessions() *session.Accessor {
	return s.sessions
}

// Accounts

func (s *Service) ListAccounts(r *http.Request) action.Result[[]finance.Account] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) ([]finance.Account, error) {
		return s.api.ListAccounts(ctx, token)
	})
}

func (s *Service) CreateAccount(r *http.Request, in finance.AccountInput) action.Result[*finance.Account] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Account, error) {
		return s.api.CreateAccount(ctx, token, in)
	})
}

func (s *Service) UpdateAccount(r *http.Request, id string, in finance.AccountInput) action.Result[*finance.Account] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Account, error) {
		return s.api.UpdateAccount(ctx, token, id, in)
	})
}

func (s *Service) DeleteAccount(r *http.Request, id string) action.Result[struct{}] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.DeleteAccount(ctx, token, id)
	})
}

// Health probes the remote API; no credential is attached.
func (s *Service) Health(r *http.Request) action.Result[struct{}] {
	return action.Do(r.Context(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.Health(ctx)
	})
}

// Categories

func (s *Service) ListCategories(r *http.Request) action.Result[[]finance.Category] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) ([]finance.Category, error) {
		return s.api.ListCategories(ctx, token)
	})
}

func (s *Service) CreateCategory(r *http.Request, in finance.CategoryInput) action.Result[*finance.Category] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Category, error) {
		return s.api.CreateCategory(ctx, token, in)
	})
}

func (s *Service) UpdateCategory(r *http.Request, id string, in finance.CategoryInput) action.Result[*finance.Category] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Category, error) {
		return s.api.UpdateCategory(ctx, token, id, in)
	})
}

func (s *Service) DeleteCategory(r *http.Request, id string) action.Result[struct{}] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.DeleteCategory(ctx, token, id)
	})
}
