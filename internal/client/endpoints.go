// This file contains the per-resource boundary exchanges of the finance API.
// Each method is one request/response pair; classification of failures
// happens in the transport core, so these stay declarative.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/centavo-app/centavo/internal/finance"
	"github.com/centavo-app/centavo/internal/interfaces"
)

var _ interfaces.FinanceAPI = (*Client)(nil)

// Accounts

func (c *Client) ListAccounts(ctx context.Context, token string) ([]finance.Account, error) {
	var out []finance.Account
	if err := c.do(ctx, http.MethodGet, "/v1/accounts", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAccount(ctx context.Context, token string, in finance.AccountInput) (*finance.Account, error) {
	var out finance.Account
	if err := c.do(ctx, http.MethodPost, "/v1/accounts", token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, token, id string, in finance.AccountInput) (*finance.Account, error) {
	var out finance.Account
	if err := c.do(ctx, http.MethodPut, "/v1/accounts/"+url.PathEscape(id), token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAccount(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/accounts/"+url.PathEscape(id), token, nil, nil, nil)
}

// Categories

func (c *Client) ListCategories(ctx context.Context, token string) ([]finance.Category, error) {
	var out []finance.Category
	if err := c.do(ctx, http.MethodGet, "/v1/categories", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, in finance.CategoryInput) (*finance.Category, error) {
	var out finance.Category
	if err := c.do(ctx, http.MethodPost, "/v1/categories", token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token, id string, in finance.CategoryInput) (*finance.Category, error) {
	var out finance.Category
	if err := c.do(ctx, http.MethodPut, "/v1/categories/"+url.PathEscape(id), token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/categories/"+url.PathEscape(id), token, nil, nil, nil)
}

// Transactions and transfers

func (c *Client) ListTransactions(ctx context.Context, token string, filter finance.TransactionFilter) (*finance.Paged[finance.Transaction], error) {
	query := url.Values{}
	if filter.AccountID != "" {
		query.Set("accountId", filter.AccountID)
	}
	if filter.CategoryID != "" {
		query.Set("categoryId", filter.CategoryID)
	}
	if !filter.From.IsZero() {
		query.Set("from", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		query.Set("to", filter.To.Format("2006-01-02"))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		query.Set("perPage", strconv.Itoa(filter.PerPage))
	}

	var out finance.Paged[finance.Transaction]
	if err := c.do(ctx, http.MethodGet, "/v1/transactions", token, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, token string, in finance.TransactionInput) (*finance.Transaction, error) {
	var out finance.Transaction
	if err := c.do(ctx, http.MethodPost, "/v1/transactions", token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, token, id string, in finance.TransactionInput) (*finance.Transaction, error) {
	var out finance.Transaction
	if err := c.do(ctx, http.MethodPut, "/v1/transactions/"+url.PathEscape(id), token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/transactions/"+url.PathEscape(id), token, nil, nil, nil)
}

func (c *Client) CreateTransfer(ctx context.Context, token string, in finance.TransferInput) (*finance.Transfer, error) {
	var out finance.Transfer
	if err := c.do(ctx, http.MethodPost, "/v1/transfers", token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Budgets

func (c *Client) ListBudgets(ctx context.Context, token, month string) ([]finance.Budget, error) {
	query := url.Values{"month": {month}}
	var out []finance.Budget
	if err := c.do(ctx, http.MethodGet, "/v1/budgets", token, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpsertBudget(ctx context.Context, token string, in finance.BudgetInput) (*finance.Budget, error) {
	var out finance.Budget
	if err := c.do(ctx, http.MethodPut, "/v1/budgets", token, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics

func (c *Client) MonthlySummary(ctx context.Context, token, month string) (*finance.MonthlySummary, error) {
	query := url.Values{"month": {month}}
	var out finance.MonthlySummary
	if err := c.do(ctx, http.MethodGet, "/v1/analytics/summary", token, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExpensesByCategory(ctx context.Context, token, month string) ([]finance.CategoryBreakdown, error) {
	query := url.Values{"month": {month}}
	var out []finance.CategoryBreakdown
	if err := c.do(ctx, http.MethodGet, "/v1/analytics/expenses-by-category", token, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BalanceHistory(ctx context.Context, token string, months int) ([]finance.BalancePoint, error) {
	query := url.Values{}
	if months > 0 {
		query.Set("months", strconv.Itoa(months))
	}
	var out []finance.BalancePoint
	if err := c.do(ctx, http.MethodGet, "/v1/analytics/balance-history", token, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health probes the remote API without credentials.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/health", "", nil, nil, nil)
}
