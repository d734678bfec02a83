package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/finance"
)

// handleHealth reports whether the remote API is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res := s.actions.Health(r)
	writeEnvelope(w, resultStatus(res), res)
}

// handleMe reports the session identity as seen locally. An anonymous or
// undecodable session yields an empty identifier, not an error.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, http.StatusOK, map[string]string{
		"userId": s.sessions.CurrentUserID(r),
	})
}

// handleDashboard renders the aggregated dashboard. Each pane carries its own
// result, so one failing analytics call never blanks the others. Dashboards
// render; rendering must not mutate cookies, so auth failures here take the
// degraded navigation through the recovery route.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	months := queryInt(r, "months", 6)

	data := s.actions.Dashboard(r, month, months)

	p := s.protocol(w)
	for _, items := range [][]action.ErrorItem{data.Summary.Errors, data.Breakdown.Errors, data.History.Errors} {
		for _, item := range items {
			if p.RecoverRender(w, r, item) {
				return
			}
		}
	}
	writeEnvelope(w, http.StatusOK, data)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	writeResult(s, w, r, s.actions.ListAccounts(r))
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var in finance.AccountInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Account](item))
		return
	}
	writeResult(s, w, r, s.actions.CreateAccount(r, in))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var in finance.AccountInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Account](item))
		return
	}
	writeResult(s, w, r, s.actions.UpdateAccount(r, chi.URLParam(r, "id"), in))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	writeResult(s, w, r, s.actions.DeleteAccount(r, chi.URLParam(r, "id")))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeResult(s, w, r, s.actions.ListCategories(r))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in finance.CategoryInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Category](item))
		return
	}
	writeResult(s, w, r, s.actions.CreateCategory(r, in))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in finance.CategoryInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Category](item))
		return
	}
	writeResult(s, w, r, s.actions.UpdateCategory(r, chi.URLParam(r, "id"), in))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	writeResult(s, w, r, s.actions.DeleteCategory(r, chi.URLParam(r, "id")))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := finance.TransactionFilter{
		AccountID:  q.Get("accountId"),
		CategoryID: q.Get("categoryId"),
		From:       queryTime(r, "from"),
		To:         queryTime(r, "to"),
		Page:       queryInt(r, "page", 1),
		PerPage:    queryInt(r, "perPage", 50),
	}
	writeResult(s, w, r, s.actions.ListTransactions(r, filter))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in finance.TransactionInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Transaction](item))
		return
	}
	writeResult(s, w, r, s.actions.CreateTransaction(r, in))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in finance.TransactionInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Transaction](item))
		return
	}
	writeResult(s, w, r, s.actions.UpdateTransaction(r, chi.URLParam(r, "id"), in))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	writeResult(s, w, r, s.actions.DeleteTransaction(r, chi.URLParam(r, "id")))
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	var in finance.TransferInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Transfer](item))
		return
	}
	writeResult(s, w, r, s.actions.CreateTransfer(r, in))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	writeResult(s, w, r, s.actions.ListBudgets(r, month))
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var in finance.BudgetInput
	if item, ok := readJSON(r, &in); !ok {
		writeResult(s, w, r, action.Fail[*finance.Budget](item))
		return
	}
	writeResult(s, w, r, s.actions.UpsertBudget(r, in))
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func queryTime(r *http.Request, name string) time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
