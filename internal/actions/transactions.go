package actions

import (
	"context"
	"net/http"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/finance"
)

// Transactions

func (s *Service) ListTransactions(r *http.Request, filter finance.TransactionFilter) action.Result[*finance.Paged[finance.Transaction]] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Paged[finance.Transaction], error) {
		return s.api.ListTransactions(ctx, token, filter)
	})
}

func (s *Service) CreateTransaction(r *http.Request, in finance.TransactionInput) action.Result[*finance.Transaction] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Transaction, error) {
		return s.api.CreateTransaction(ctx, token, in)
	})
}

func (s *Service) UpdateTransaction(r *http.Request, id string, in finance.TransactionInput) action.Result[*finance.Transaction] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Transaction, error) {
		return s.api.UpdateTransaction(ctx, token, id, in)
	})
}

func (s *Service) DeleteTransaction(r *http.Request, id string) action.Result[struct{}] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.DeleteTransaction(ctx, token, id)
	})
}

// CreateTransfer moves money between two accounts. Balance sufficiency is the
// backend's rule; a rejection surfaces as a humanized conflict with the
// server's own wording.
func (s *Service) CreateTransfer(r *http.Request, in finance.TransferInput) action.Result[*finance.Transfer] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Transfer, error) {
		return s.api.CreateTransfer(ctx, token, in)
	})
}
