// Package server implements the browser-facing HTTP surface: the login
// surface, the dedicated session-recovery route, and the JSON endpoints that
// invoke boundary operations. Every response a caller sees is the
// action.Result envelope; raw errors and panics stop at the boundary.
package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/centavo-app/centavo/internal/actions"
	"github.com/centavo-app/centavo/internal/config"
	"github.com/centavo-app/centavo/internal/logging"
	"github.com/centavo-app/centavo/internal/recovery"
	"github.com/centavo-app/centavo/internal/session"
)

// Server wires routes to boundary operations.
type Server struct {
	router      chi.Router
	actions     *actions.Service
	sessions    *session.Accessor
	loginPath   string
	recoverPath string
	log         *logging.Logger
}

// New creates the HTTP surface.
func New(cfg config.ServerConfig, svc *actions.Service) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		actions:     svc,
		sessions:    svc.Sessions(),
		loginPath:   cfg.LoginPath,
		recoverPath: cfg.RecoverPath,
		log:         logging.GetServerLogger(),
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(s.requestLogger)

	s.router.Get(s.loginPath, s.handleLogin)
	s.router.Get(s.recoverPath, s.handleRecover)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/me", s.handleMe)
		r.Get("/dashboard", s.handleDashboard)

		r.Get("/accounts", s.handleListAccounts)
		r.Post("/accounts", s.handleCreateAccount)
		r.Put("/accounts/{id}", s.handleUpdateAccount)
		r.Delete("/accounts/{id}", s.handleDeleteAccount)

		r.Get("/categories", s.handleListCategories)
		r.Post("/categories", s.handleCreateCategory)
		r.Put("/categories/{id}", s.handleUpdateCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)

		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Put("/transactions/{id}", s.handleUpdateTransaction)
		r.Delete("/transactions/{id}", s.handleDeleteTransaction)

		r.Post("/transfers", s.handleCreateTransfer)

		r.Get("/budgets", s.handleListBudgets)
		r.Put("/budgets", s.handleUpsertBudget)
	})
}

// handleRecover is the sole cookie-mutating path: it clears both session
// cookies and forwards to the login surface. Both the interactive and the
// render-only recovery paths funnel through it, and it is safe to hit with
// no session at all.
func (s *Server) handleRecover(w http.ResponseWriter, r *http.Request) {
	recovery.ClearSessionCookies(w, s.sessions.Config())
	http.Redirect(w, r, s.loginPath, http.StatusSeeOther)
}

// handleLogin serves the login entry point. The actual form is rendered by
// the browser shell; this only anchors the path recovery navigates to.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!doctype html><title>Centavo</title><h1>Inicia sesión</h1>\n"))
}

// protocol creates the per-request recovery protocol. Handlers that run
// several boundary operations for one screen share a single instance so
// concurrent auth failures collapse into one navigation.
func (s *Server) protocol(w http.ResponseWriter) *recovery.Protocol {
	return recovery.NewProtocol(flashNotifier{w: w}, s.sessions.Config(), s.loginPath, s.recoverPath)
}

// flashNotifier surfaces a transient notification as a short-lived,
// script-readable cookie the browser shell displays once and discards.
type flashNotifier struct {
	w http.ResponseWriter
}

func (n flashNotifier) Notify(title, message string) {
	http.SetCookie(n.w, &http.Cookie{
		Name:     "centavo_notice",
		Value:    url.QueryEscape(title + "|" + message),
		Path:     "/",
		MaxAge:   60,
		SameSite: http.SameSiteLaxMode,
	})
}

// requestLogger logs each request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
