package actions

import (
	"context"
	"net/http"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/finance"
)

// Budgets

func (s *Service) ListBudgets(r *http.Request, month string) action.Result[[]finance.Budget] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) ([]finance.Budget, error) {
		return s.api.ListBudgets(ctx, token, month)
	})
}

func (s *Service) UpsertBudget(r *http.Request, in finance.BudgetInput) action.Result[*finance.Budget] {
	token := s.sessions.Token(r)
	return action.Do(r.Context(), func(ctx context.Context) (*finance.Budget, error) {
		return s.api.UpsertBudget(ctx, token, in)
	})
}
