// Package interfaces defines the core collaborator interfaces used for
// dependency injection and testability across the gateway.
package interfaces

import (
	"context"

	"github.com/centavo-app/centavo/internal/finance"
)

// FinanceAPI is the remote API collaborator. Every method is one boundary
// exchange: a single HTTP request with the bearer credential attached when
// present, returning either a typed payload or a taxonomy-classified error.
// Implementations must never panic across this boundary.
type FinanceAPI interface {
	// Accounts
	ListAccounts(ctx context.Context, token string) ([]finance.Account, error)
	CreateAccount(ctx context.Context, token string, in finance.AccountInput) (*finance.Account, error)
	UpdateAccount(ctx context.Context, token, id string, in finance.AccountInput) (*finance.Account, error)
	DeleteAccount(ctx context.Context, token, id string) error

	// Categories
	ListCategories(ctx context.Context, token string) ([]finance.Category, error)
	CreateCategory(ctx context.Context, token string, in finance.CategoryInput) (*finance.Category, error)
	UpdateCategory(ctx context.Context, token, id string, in finance.CategoryInput) (*finance.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error

	// Transactions and transfers
	ListTransactions(ctx context.Context, token string, filter finance.TransactionFilter) (*finance.Paged[finance.Transaction], error)
	CreateTransaction(ctx context.Context, token string, in finance.TransactionInput) (*finance.Transaction, error)
	UpdateTransaction(ctx context.Context, token, id string, in finance.TransactionInput) (*finance.Transaction, error)
	DeleteTransaction(ctx context.Context, token, id string) error
	CreateTransfer(ctx context.Context, token string, in finance.TransferInput) (*finance.Transfer, error)

	// Budgets
	ListBudgets(ctx context.Context, token, month string) ([]finance.Budget, error)
	UpsertBudget(ctx context.Context, token string, in finance.BudgetInput) (*finance.Budget, error)

	// Analytics
	MonthlySummary(ctx context.Context, token, month string) (*finance.MonthlySummary, error)
	ExpensesByCategory(ctx context.Context, token, month string) ([]finance.CategoryBreakdown, error)
	BalanceHistory(ctx context.Context, token string, months int) ([]finance.BalancePoint, error)

	// Health probes the remote API without credentials.
	Health(ctx context.Context) error
}

// Notifier publishes a transient, user-facing notification. The recovery
// protocol uses it to explain why the client is being logged out.
type Notifier interface {
	Notify(title, message string)
}
