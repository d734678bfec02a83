package main

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/finance"
)

func (s *store) listAccounts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]finance.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *store) createAccount(w http.ResponseWriter, r *http.Request) {
	var in finance.AccountInput
	if !decode(w, r, &in) {
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "account name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Name, in.Name) {
			writeError(w, http.StatusConflict, "CONFLICT", "an account with that name already exists")
			return
		}
	}
	acct := &finance.Account{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Type:      in.Type,
		Currency:  in.Currency,
		Balance:   in.Balance,
		CreatedAt: time.Now().UTC(),
	}
	s.accounts[acct.ID] = acct
	writeJSON(w, http.StatusCreated, acct)
}

func (s *store) updateAccount(w http.ResponseWriter, r *http.Request) {
	var in finance.AccountInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "account not found")
		return
	}
	acct.Name = in.Name
	acct.Type = in.Type
	acct.Currency = in.Currency
	acct.Balance = in.Balance
	writeJSON(w, http.StatusOK, acct)
}

func (s *store) deleteAccount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := s.accounts[id]; !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "account not found")
		return
	}
	for _, t := range s.transactions {
		if t.AccountID == id {
			writeError(w, http.StatusConflict, "CONFLICT/FOREIGN_KEY_VIOLATION", "account has transactions")
			return
		}
	}
	delete(s.accounts, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *store) listCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]finance.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *store) createCategory(w http.ResponseWriter, r *http.Request) {
	var in finance.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "category name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat := &finance.Category{ID: uuid.NewString(), Name: in.Name, Kind: in.Kind, Color: in.Color}
	s.categories[cat.ID] = cat
	writeJSON(w, http.StatusCreated, cat)
}

func (s *store) updateCategory(w http.ResponseWriter, r *http.Request) {
	var in finance.CategoryInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.categories[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "category not found")
		return
	}
	cat.Name = in.Name
	cat.Kind = in.Kind
	cat.Color = in.Color
	writeJSON(w, http.StatusOK, cat)
}

func (s *store) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := s.categories[id]; !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "category not found")
		return
	}
	for _, t := range s.transactions {
		if t.CategoryID == id {
			writeError(w, http.StatusConflict, "CONFLICT/FOREIGN_KEY_VIOLATION", "category has transactions")
			return
		}
	}
	delete(s.categories, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *store) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	perPage := queryInt(q.Get("perPage"), 50)

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]finance.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if id := q.Get("accountId"); id != "" && t.AccountID != id {
			continue
		}
		if id := q.Get("categoryId"); id != "" && t.CategoryID != id {
			continue
		}
		matched = append(matched, *t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	total := len(matched)
	lo := (page - 1) * perPage
	if lo > total {
		lo = total
	}
	hi := lo + perPage
	if hi > total {
		hi = total
	}
	writeJSON(w, http.StatusOK, finance.Paged[finance.Transaction]{
		Items:   matched[lo:hi],
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

func (s *store) createTransaction(w http.ResponseWriter, r *http.Request) {
	var in finance.TransactionInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[in.AccountID]
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "BAD_REQUEST", "unknown account")
		return
	}
	txn := &finance.Transaction{
		ID:         uuid.NewString(),
		AccountID:  in.AccountID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Note:       in.Note,
		Date:       in.Date,
	}
	s.transactions[txn.ID] = txn
	acct.Balance += in.Amount
	writeJSON(w, http.StatusCreated, txn)
}

func (s *store) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var in finance.TransactionInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "transaction not found")
		return
	}
	if acct, ok := s.accounts[txn.AccountID]; ok {
		acct.Balance += in.Amount - txn.Amount
	}
	txn.AccountID = in.AccountID
	txn.CategoryID = in.CategoryID
	txn.Amount = in.Amount
	txn.Note = in.Note
	txn.Date = in.Date
	writeJSON(w, http.StatusOK, txn)
}

func (s *store) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	txn, ok := s.transactions[id]
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "transaction not found")
		return
	}
	if acct, ok := s.accounts[txn.AccountID]; ok {
		acct.Balance -= txn.Amount
	}
	delete(s.transactions, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *store) createTransfer(w http.ResponseWriter, r *http.Request) {
	var in finance.TransferInput
	if !decode(w, r, &in) {
		return
	}
	if in.Amount <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "BAD_REQUEST", "transfer amount must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[in.FromAccountID]
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "BAD_REQUEST", "unknown source account")
		return
	}
	to, ok := s.accounts[in.ToAccountID]
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "BAD_REQUEST", "unknown destination account")
		return
	}
	from.Balance -= in.Amount
	to.Balance += in.Amount

	xfer := &finance.Transfer{
		ID:            uuid.NewString(),
		FromAccountID: in.FromAccountID,
		ToAccountID:   in.ToAccountID,
		Amount:        in.Amount,
		Note:          in.Note,
		Date:          in.Date,
	}
	writeJSON(w, http.StatusCreated, xfer)
}

func (s *store) listBudgets(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]finance.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if month != "" && b.Month != month {
			continue
		}
		out = append(out, *b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *store) upsertBudget(w http.ResponseWriter, r *http.Request) {
	var in finance.BudgetInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := in.CategoryID + "/" + in.Month
	b, ok := s.budgets[key]
	if !ok {
		b = &finance.Budget{ID: uuid.NewString(), CategoryID: in.CategoryID, Month: in.Month}
		s.budgets[key] = b
	}
	b.Limit = in.Limit
	writeJSON(w, http.StatusOK, b)
}

func (s *store) summary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	s.mu.Lock()
	defer s.mu.Unlock()

	sum := finance.MonthlySummary{Month: month}
	for _, t := range s.transactions {
		if month != "" && t.Date.UTC().Format("2006-01") != month {
			continue
		}
		if t.Amount >= 0 {
			sum.Income += t.Amount
		} else {
			sum.Expenses += -t.Amount
		}
	}
	sum.Net = sum.Income - sum.Expenses
	writeJSON(w, http.StatusOK, sum)
}

func (s *store) expensesByCategory(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[string]int64)
	for _, t := range s.transactions {
		if t.Amount >= 0 {
			continue
		}
		if month != "" && t.Date.UTC().Format("2006-01") != month {
			continue
		}
		totals[t.CategoryID] += -t.Amount
	}

	out := make([]finance.CategoryBreakdown, 0, len(totals))
	for id, total := range totals {
		name := ""
		if cat, ok := s.categories[id]; ok {
			name = cat.Name
		}
		out = append(out, finance.CategoryBreakdown{CategoryID: id, CategoryName: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	writeJSON(w, http.StatusOK, out)
}

func (s *store) balanceHistory(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r.URL.Query().Get("months"), 6)

	s.mu.Lock()
	defer s.mu.Unlock()

	var balance int64
	for _, a := range s.accounts {
		balance += a.Balance
	}

	// Walk backwards from the current balance, undoing each month's net.
	now := time.Now().UTC()
	points := make([]finance.BalancePoint, 0, months)
	for i := 0; i < months; i++ {
		at := now.AddDate(0, -i, 0)
		points = append(points, finance.BalancePoint{Date: at, Balance: balance})

		month := at.Format("2006-01")
		for _, t := range s.transactions {
			if t.Date.UTC().Format("2006-01") == month {
				balance -= t.Amount
			}
		}
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	writeJSON(w, http.StatusOK, points)
}

func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
