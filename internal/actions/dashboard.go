package actions

import (
	"context"
	"net/http"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/aggregate"
	"github.com/centavo-app/centavo/internal/finance"
)

// DashboardData carries one independently-settled result per dashboard
// panel. A failed panel reports its own errors; sibling panels keep their
// data. The UI renders each slice from its own result and never blanks a
// panel because another one failed.
type DashboardData struct {
	Summary   action.Result[*finance.MonthlySummary]     `json:"summary"`
	Breakdown action.Result[[]finance.CategoryBreakdown] `json:"breakdown"`
	History   action.Result[[]finance.BalancePoint]      `json:"history"`
}

// Dashboard issues the month's analytics queries concurrently and resolves
// once all of them have settled, whatever their individual outcomes.
func (s *Service) Dashboard(r *http.Request, month string, historyMonths int) DashboardData {
	token := s.sessions.Token(r)

	var data DashboardData
	g := aggregate.New(r.Context())

	aggregate.Go(g, func(ctx context.Context) action.Result[*finance.MonthlySummary] {
		return action.Do(ctx, func(ctx context.Context) (*finance.MonthlySummary, error) {
			return s.api.MonthlySummary(ctx, token, month)
		})
	}, func(res action.Result[*finance.MonthlySummary]) {
		data.Summary = res
	})

	aggregate.Go(g, func(ctx context.Context) action.Result[[]finance.CategoryBreakdown] {
		return action.Do(ctx, func(ctx context.Context) ([]finance.CategoryBreakdown, error) {
			return s.api.ExpensesByCategory(ctx, token, month)
		})
	}, func(res action.Result[[]finance.CategoryBreakdown]) {
		data.Breakdown = res
	})

	aggregate.Go(g, func(ctx context.Context) action.Result[[]finance.BalancePoint] {
		return action.Do(ctx, func(ctx context.Context) ([]finance.BalancePoint, error) {
			return s.api.BalanceHistory(ctx, token, historyMonths)
		})
	}, func(res action.Result[[]finance.BalancePoint]) {
		data.History = res
	})

	g.Wait()
	return data
}
