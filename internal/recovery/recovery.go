// Package recovery detects authentication failures anywhere in the boundary
// call graph and drives the client through the single logged-out path:
// notify, clear the session cookies, navigate to the login surface.
//
// Detection and execution are deliberately split. IsAuthItem and IsAuthError
// are pure predicates with no side effects; Protocol owns the side-effecting
// recovery and its idempotence.
package recovery

import (
	"net/http"
	"sync/atomic"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/errdefs"
	"github.com/centavo-app/centavo/internal/interfaces"
	"github.com/centavo-app/centavo/internal/logging"
	"github.com/centavo-app/centavo/internal/session"
)

// State models the protocol's lifecycle for one screen.
type State int32

const (
	StateNormal State = iota
	StateRecovering
	StateRecovered
)

// IsAuthItem reports whether a humanized error item signals an
// authentication failure: HTTP 401/403, or a code in the
// unauthorized/forbidden families. Pure predicate.
func IsAuthItem(item action.ErrorItem) bool {
	switch item.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return errdefs.IsAuthCode(item.Code)
}

// IsAuthError is the error-value counterpart of IsAuthItem.
func IsAuthError(err error) bool {
	return errdefs.IsAuthError(err)
}

// FirstAuthItem scans a failure list for an authentication signature.
func FirstAuthItem(items []action.ErrorItem) (action.ErrorItem, bool) {
	for _, item := range items {
		if IsAuthItem(item) {
			return item, true
		}
	}
	return action.ErrorItem{}, false
}

// Protocol executes auth-failure recovery for one screen's lifetime. Create
// one Protocol per request (or per aggregated screen render) and share it
// across that screen's boundary operations: concurrent auth failures then
// collapse into exactly one notification and one navigation.
type Protocol struct {
	notifier    interfaces.Notifier
	cookies     session.Config
	loginPath   string
	recoverPath string
	state       atomic.Int32
	log         *logging.Logger
}

// NewProtocol wires a recovery protocol. loginPath is the login surface,
// recoverPath the dedicated cookie-clearing route used from render-only
// contexts.
func NewProtocol(notifier interfaces.Notifier, cookies session.Config, loginPath, recoverPath string) *Protocol {
	return &Protocol{
		notifier:    notifier,
		cookies:     cookies,
		loginPath:   loginPath,
		recoverPath: recoverPath,
		log:         logging.GetRecoveryLogger(),
	}
}

// State returns the current protocol state.
func (p *Protocol) State() State {
	return State(p.state.Load())
}

// Recover runs the recovery path from an interactive context, one that holds
// cookie-mutation privilege. It returns true when the item was an auth
// failure; callers receiving true must suppress their own error display for
// that failure, since recovery already communicated it.
//
// The path runs at most once per Protocol: the first caller notifies, clears
// both session cookies, and issues the navigation; later callers (including
// concurrent ones) observe true and do nothing. Navigation is skipped when
// the request is already on the login surface to avoid redirect loops.
func (p *Protocol) Recover(w http.ResponseWriter, r *http.Request, item action.ErrorItem) bool {
	if !IsAuthItem(item) {
		return false
	}
	if !p.state.CompareAndSwap(int32(StateNormal), int32(StateRecovering)) {
		return true
	}

	p.log.Info("auth failure detected, running recovery", "code", item.Code, "status", item.StatusCode)
	if p.notifier != nil {
		p.notifier.Notify(item.Title, item.Message)
	}
	ClearSessionCookies(w, p.cookies)
	if r.URL.Path != p.loginPath {
		http.Redirect(w, r, p.loginPath, http.StatusSeeOther)
	}

	p.state.Store(int32(StateRecovered))
	return true
}

// RecoverRender is the degraded path for render-only contexts, which must not
// mutate cookies. It only navigates, to the recovery route, which clears the
// cookies on the next request and forwards to login. The notification step is
// skipped too: the notifier implementations communicate through cookies, and
// no cookie write of any kind may originate here. Same detection and
// idempotence semantics as Recover.
func (p *Protocol) RecoverRender(w http.ResponseWriter, r *http.Request, item action.ErrorItem) bool {
	if !IsAuthItem(item) {
		return false
	}
	if !p.state.CompareAndSwap(int32(StateNormal), int32(StateRecovering)) {
		return true
	}

	p.log.Info("auth failure detected in render context, navigating to recovery route", "code", item.Code, "status", item.StatusCode)
	if r.URL.Path != p.loginPath && r.URL.Path != p.recoverPath {
		http.Redirect(w, r, p.recoverPath, http.StatusSeeOther)
	}

	p.state.Store(int32(StateRecovered))
	return true
}

// ClearSessionCookies expires both session cookies. Safe to call when no
// session exists. This helper and the recovery route are the only code paths
// that write the session cookies.
func ClearSessionCookies(w http.ResponseWriter, cfg session.Config) {
	expire(w, cfg.CookieName)
	expire(w, cfg.RefreshCookieName)
}

func expire(w http.ResponseWriter, name string) {
	if name == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
