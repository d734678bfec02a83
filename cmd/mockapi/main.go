// Package main implements a mock finance API for local gateway development.
// It keeps everything in memory and emits the same {code, message} failure
// bodies the production API does, so the gateway's error path can be
// exercised end to end without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/finance"
)

// apiError is the failure body shape the gateway's parser expects.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// store holds all mock state behind one lock. Contention is irrelevant here.
type store struct {
	mu           sync.Mutex
	accounts     map[string]*finance.Account
	categories   map[string]*finance.Category
	transactions map[string]*finance.Transaction
	budgets      map[string]*finance.Budget
}

func newStore() *store {
	s := &store{
		accounts:     make(map[string]*finance.Account),
		categories:   make(map[string]*finance.Category),
		transactions: make(map[string]*finance.Transaction),
		budgets:      make(map[string]*finance.Budget),
	}
	s.seed()
	return s
}

func (s *store) seed() {
	now := time.Now().UTC()
	acct := &finance.Account{
		ID:        uuid.NewString(),
		Name:      "Cuenta corriente",
		Type:      finance.AccountChecking,
		Currency:  "MXN",
		Balance:   125_000,
		CreatedAt: now,
	}
	s.accounts[acct.ID] = acct

	cat := &finance.Category{
		ID:   uuid.NewString(),
		Name: "Supermercado",
		Kind: finance.CategoryExpense,
	}
	s.categories[cat.ID] = cat
}

func main() {
	addr := flag.String("addr", ":9090", "Listen address for the mock API")
	flag.Parse()

	st := newStore()

	r := chi.NewRouter()
	r.Use(logRequests)
	r.Use(requireBearer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/accounts", st.listAccounts)
		r.Post("/accounts", st.createAccount)
		r.Put("/accounts/{id}", st.updateAccount)
		r.Delete("/accounts/{id}", st.deleteAccount)

		r.Get("/categories", st.listCategories)
		r.Post("/categories", st.createCategory)
		r.Put("/categories/{id}", st.updateCategory)
		r.Delete("/categories/{id}", st.deleteCategory)

		r.Get("/transactions", st.listTransactions)
		r.Post("/transactions", st.createTransaction)
		r.Put("/transactions/{id}", st.updateTransaction)
		r.Delete("/transactions/{id}", st.deleteTransaction)

		r.Post("/transfers", st.createTransfer)

		r.Get("/budgets", st.listBudgets)
		r.Put("/budgets", st.upsertBudget)

		r.Get("/analytics/summary", st.summary)
		r.Get("/analytics/expenses-by-category", st.expensesByCategory)
		r.Get("/analytics/balance-history", st.balanceHistory)
	})

	log.Printf("Mock finance API listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}

// requireBearer rejects unauthenticated requests the way the production API
// does. The literal token "expired" triggers the token-expired failure, which
// is handy for exercising the gateway's recovery path by hand.
func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/health" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}
		if token == "expired" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED/TOKEN_EXPIRED", "session token has expired")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Code: code, Message: message})
}

func decode[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		return false
	}
	return true
}
