// Package finance defines the payload types exchanged with the remote
// finance API: accounts, categories, transactions, transfers, monthly
// budgets, and the analytics shapes consumed by the dashboard.
//
// All monetary amounts are integer cents in the account currency. The remote
// API owns every business rule (balance checks, uniqueness); these types only
// describe the wire shapes.
package finance

import "time"

// AccountType enumerates the supported account kinds.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCash     AccountType = "cash"
	AccountCredit   AccountType = "credit"
)

// Account represents a money account owned by the current user.
type Account struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	Currency  string      `json:"currency"`
	Balance   int64       `json:"balance"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AccountInput carries the writable fields of an account.
type AccountInput struct {
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	Currency string      `json:"currency"`
	Balance  int64       `json:"balance"`
}

// CategoryKind splits categories into the two budgeting directions.
type CategoryKind string

const (
	CategoryIncome  CategoryKind = "income"
	CategoryExpense CategoryKind = "expense"
)

// Category classifies transactions for budgeting and analytics.
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Kind  CategoryKind `json:"kind"`
	Color string       `json:"color,omitempty"`
}

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name  string       `json:"name"`
	Kind  CategoryKind `json:"kind"`
	Color string       `json:"color,omitempty"`
}

// Transaction is a single movement on an account. Amount is signed: negative
// for expenses, positive for income.
type Transaction struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"accountId"`
	CategoryID string    `json:"categoryId"`
	Amount     int64     `json:"amount"`
	Note       string    `json:"note,omitempty"`
	Date       time.Time `json:"date"`
}

// TransactionInput carries the writable fields of a transaction.
type TransactionInput struct {
	AccountID  string    `json:"accountId"`
	CategoryID string    `json:"categoryId"`
	Amount     int64     `json:"amount"`
	Note       string    `json:"note,omitempty"`
	Date       time.Time `json:"date"`
}

// TransactionFilter narrows transaction listings. Zero values mean "no
// constraint"; Page is 1-based.
type TransactionFilter struct {
	AccountID  string
	CategoryID string
	From       time.Time
	To         time.Time
	Page       int
	PerPage    int
}

// Transfer moves money between two accounts of the same user.
type Transfer struct {
	ID            string    `json:"id"`
	FromAccountID string    `json:"fromAccountId"`
	ToAccountID   string    `json:"toAccountId"`
	Amount        int64     `json:"amount"`
	Note          string    `json:"note,omitempty"`
	Date          time.Time `json:"date"`
}

// TransferInput carries the writable fields of a transfer.
type TransferInput struct {
	FromAccountID string    `json:"fromAccountId"`
	ToAccountID   string    `json:"toAccountId"`
	Amount        int64     `json:"amount"`
	Note          string    `json:"note,omitempty"`
	Date          time.Time `json:"date"`
}

// Budget is a per-category monthly spending limit. Month uses "2006-01".
type Budget struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Month      string `json:"month"`
	Limit      int64  `json:"limit"`
	Spent      int64  `json:"spent"`
}

// BudgetInput carries the writable fields of a budget.
type BudgetInput struct {
	CategoryID string `json:"categoryId"`
	Month      string `json:"month"`
	Limit      int64  `json:"limit"`
}

// Paged wraps a page of results with pagination metadata.
type Paged[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// MonthlySummary aggregates all movements of one month.
type MonthlySummary struct {
	Month    string `json:"month"`
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
	Net      int64  `json:"net"`
}

// CategoryBreakdown is one slice of the per-category expense chart.
type CategoryBreakdown struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Total        int64  `json:"total"`
}

// BalancePoint is one sample of the balance-over-time chart.
type BalancePoint struct {
	Date    time.Time `json:"date"`
	Balance int64     `json:"balance"`
}
