package actions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/errdefs"
	"github.com/centavo-app/centavo/internal/finance"
	"github.com/centavo-app/centavo/internal/interfaces"
	"github.com/centavo-app/centavo/internal/session"
)

// fakeAPI embeds the interface so each test overrides only the calls it
// exercises; an unexpected call panics, which action.Do turns into an error
// result rather than a crashed test binary.
type fakeAPI struct {
	interfaces.FinanceAPI

	listAccounts  func(ctx context.Context, token string) ([]finance.Account, error)
	createAccount func(ctx context.Context, token string, in finance.AccountInput) (*finance.Account, error)
	summary       func(ctx context.Context, token, month string) (*finance.MonthlySummary, error)
	breakdown     func(ctx context.Context, token, month string) ([]finance.CategoryBreakdown, error)
	history       func(ctx context.Context, token string, months int) ([]finance.BalancePoint, error)
}

func (f *fakeAPI) ListAccounts(ctx context.Context, token string) ([]finance.Account, error) {
	return f.listAccounts(ctx, token)
}

func (f *fakeAPI) CreateAccount(ctx context.Context, token string, in finance.AccountInput) (*finance.Account, error) {
	return f.createAccount(ctx, token, in)
}

func (f *fakeAPI) MonthlySummary(ctx context.Context, token, month string) (*finance.MonthlySummary, error) {
	return f.summary(ctx, token, month)
}

func (f *fakeAPI) ExpensesByCategory(ctx context.Context, token, month string) ([]finance.CategoryBreakdown, error) {
	return f.breakdown(ctx, token, month)
}

func (f *fakeAPI) BalanceHistory(ctx context.Context, token string, months int) ([]finance.BalancePoint, error) {
	return f.history(ctx, token, months)
}

func newTestService(api interfaces.FinanceAPI) *Service {
	return NewService(api, session.NewAccessor(session.Config{}))
}

func requestWithSession(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: session.DefaultConfig().CookieName, Value: token})
	}
	return r
}

func TestListAccountsForwardsSessionToken(t *testing.T) {
	var gotToken string
	api := &fakeAPI{
		listAccounts: func(_ context.Context, token string) ([]finance.Account, error) {
			gotToken = token
			return []finance.Account{{ID: "a-1", Name: "Cuenta corriente"}}, nil
		},
	}

	res := newTestService(api).ListAccounts(requestWithSession("tok-123"))

	require.True(t, res.Succeeded())
	require.Len(t, res.Data, 1)
	assert.Equal(t, "tok-123", gotToken)
}

func TestListAccountsAnonymousStillCalls(t *testing.T) {
	var gotToken string
	api := &fakeAPI{
		listAccounts: func(_ context.Context, token string) ([]finance.Account, error) {
			gotToken = token
			return nil, errdefs.ErrUnauthorized.New("missing bearer token")
		},
	}

	res := newTestService(api).ListAccounts(requestWithSession(""))

	require.False(t, res.Succeeded())
	assert.Empty(t, gotToken)
	assert.Equal(t, errdefs.CodeUnauthorized, res.Primary().Code)
}

func TestCreateAccountErrorIsHumanized(t *testing.T) {
	api := &fakeAPI{
		createAccount: func(context.Context, string, finance.AccountInput) (*finance.Account, error) {
			return nil, errdefs.NewByCode(errdefs.CodeEmailAlreadyExists, "already in use")
		},
	}

	res := newTestService(api).CreateAccount(requestWithSession("tok"), finance.AccountInput{Name: "X"})

	require.False(t, res.Succeeded())
	item := res.Primary()
	assert.Equal(t, "Correo electrónico ya existe", item.Title)
	assert.Equal(t, "already in use", item.Message)
	assert.Equal(t, errdefs.CodeEmailAlreadyExists, item.Code)
	assert.Equal(t, http.StatusConflict, item.StatusCode)
}

func TestPanicInCollaboratorBecomesErrorResult(t *testing.T) {
	api := &fakeAPI{
		listAccounts: func(context.Context, string) ([]finance.Account, error) {
			panic("collaborator bug")
		},
	}

	var res = newTestService(api).ListAccounts(requestWithSession("tok"))

	require.False(t, res.Succeeded())
	assert.Equal(t, errdefs.CodeInternal, res.Primary().Code)
	assert.NotContains(t, res.Primary().Message, "collaborator bug")
}

func TestDashboardAllPanelsSettle(t *testing.T) {
	api := &fakeAPI{
		summary: func(_ context.Context, _, month string) (*finance.MonthlySummary, error) {
			return &finance.MonthlySummary{Month: month, Income: 500_00, Expenses: 300_00, Net: 200_00}, nil
		},
		breakdown: func(context.Context, string, string) ([]finance.CategoryBreakdown, error) {
			return []finance.CategoryBreakdown{{CategoryName: "Supermercado", Total: 150_00}}, nil
		},
		history: func(_ context.Context, _ string, months int) ([]finance.BalancePoint, error) {
			points := make([]finance.BalancePoint, months)
			return points, nil
		},
	}

	data := newTestService(api).Dashboard(requestWithSession("tok"), "2026-08", 6)

	require.True(t, data.Summary.Succeeded())
	assert.Equal(t, "2026-08", data.Summary.Data.Month)
	require.True(t, data.Breakdown.Succeeded())
	require.True(t, data.History.Succeeded())
	assert.Len(t, data.History.Data, 6)
}

func TestDashboardFailedPanelDoesNotBlankSiblings(t *testing.T) {
	api := &fakeAPI{
		summary: func(_ context.Context, _, month string) (*finance.MonthlySummary, error) {
			return &finance.MonthlySummary{Month: month}, nil
		},
		breakdown: func(context.Context, string, string) ([]finance.CategoryBreakdown, error) {
			return nil, errdefs.ErrServiceUnavailable.New("analytics down")
		},
		history: func(context.Context, string, int) ([]finance.BalancePoint, error) {
			time.Sleep(10 * time.Millisecond)
			return []finance.BalancePoint{{Balance: 100_00}}, nil
		},
	}

	data := newTestService(api).Dashboard(requestWithSession("tok"), "2026-08", 1)

	assert.True(t, data.Summary.Succeeded())
	assert.True(t, data.History.Succeeded(), "slow panel still settles before Dashboard returns")

	require.False(t, data.Breakdown.Succeeded())
	assert.Equal(t, errdefs.CodeServiceUnavailable, data.Breakdown.Primary().Code)
}

func TestDashboardPanicInOnePanelIsIsolated(t *testing.T) {
	api := &fakeAPI{
		summary: func(context.Context, string, string) (*finance.MonthlySummary, error) {
			panic("summary exploded")
		},
		breakdown: func(context.Context, string, string) ([]finance.CategoryBreakdown, error) {
			return nil, nil
		},
		history: func(context.Context, string, int) ([]finance.BalancePoint, error) {
			return nil, nil
		},
	}

	data := newTestService(api).Dashboard(requestWithSession("tok"), "2026-08", 3)

	require.False(t, data.Summary.Succeeded())
	assert.Equal(t, errdefs.CodeInternal, data.Summary.Primary().Code)
	assert.True(t, data.Breakdown.Succeeded())
	assert.True(t, data.History.Succeeded())
}
