package recovery

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/errdefs"
	"github.com/centavo-app/centavo/internal/session"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Notify(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, title+": "+message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func authItem() action.ErrorItem {
	return action.ErrorItem{
		Title:      "Sesión expirada",
		Message:    "Tu sesión ha expirado. Inicia sesión nuevamente.",
		Code:       errdefs.CodeTokenExpired,
		StatusCode: http.StatusUnauthorized,
	}
}

func newTestProtocol(n *recordingNotifier) *Protocol {
	return NewProtocol(n, session.DefaultConfig(), "/login", "/auth/recover")
}

func TestIsAuthItem(t *testing.T) {
	tests := []struct {
		name string
		item action.ErrorItem
		want bool
	}{
		{"401 status", action.ErrorItem{StatusCode: http.StatusUnauthorized}, true},
		{"403 status", action.ErrorItem{StatusCode: http.StatusForbidden}, true},
		{"unauthorized code only", action.ErrorItem{Code: errdefs.CodeUnauthorized}, true},
		{"token expired code only", action.ErrorItem{Code: errdefs.CodeTokenExpired}, true},
		{"forbidden subtype code", action.ErrorItem{Code: "FORBIDDEN/PLAN_LIMIT"}, true},
		{"conflict", action.ErrorItem{Code: errdefs.CodeConflict, StatusCode: http.StatusConflict}, false},
		{"not found", action.ErrorItem{Code: errdefs.CodeNotFound, StatusCode: http.StatusNotFound}, false},
		{"empty item", action.ErrorItem{}, false},
		{"500 with unauthorized-looking message", action.ErrorItem{Message: "unauthorized", StatusCode: http.StatusInternalServerError}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthItem(tt.item))
		})
	}
}

func TestFirstAuthItem(t *testing.T) {
	items := []action.ErrorItem{
		{Code: errdefs.CodeConflict, StatusCode: http.StatusConflict},
		authItem(),
		{Code: errdefs.CodeNotFound},
	}

	item, ok := FirstAuthItem(items)
	require.True(t, ok)
	assert.Equal(t, authItem(), item)

	_, ok = FirstAuthItem(items[:1])
	assert.False(t, ok)
	_, ok = FirstAuthItem(nil)
	assert.False(t, ok)
}

func TestRecoverIgnoresNonAuthFailures(t *testing.T) {
	n := &recordingNotifier{}
	p := newTestProtocol(n)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)

	handled := p.Recover(w, r, action.ErrorItem{Code: errdefs.CodeConflict, StatusCode: http.StatusConflict})

	assert.False(t, handled)
	assert.Equal(t, 0, n.count())
	assert.Equal(t, StateNormal, p.State())
	assert.Empty(t, w.Result().Cookies())
}

func TestRecoverClearsCookiesAndRedirects(t *testing.T) {
	n := &recordingNotifier{}
	p := newTestProtocol(n)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)

	handled := p.Recover(w, r, authItem())

	require.True(t, handled)
	assert.Equal(t, 1, n.count())
	assert.Equal(t, StateRecovered, p.State())

	res := w.Result()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))

	expired := map[string]bool{}
	for _, c := range res.Cookies() {
		if c.MaxAge < 0 {
			expired[c.Name] = true
		}
	}
	cfg := session.DefaultConfig()
	assert.True(t, expired[cfg.CookieName])
	assert.True(t, expired[cfg.RefreshCookieName])
}

func TestRecoverRunsAtMostOnce(t *testing.T) {
	n := &recordingNotifier{}
	p := newTestProtocol(n)

	first := httptest.NewRecorder()
	handled := p.Recover(first, httptest.NewRequest(http.MethodGet, "/api/accounts", nil), authItem())
	require.True(t, handled)

	second := httptest.NewRecorder()
	handled = p.Recover(second, httptest.NewRequest(http.MethodGet, "/api/budgets", nil), authItem())

	assert.True(t, handled, "later callers still learn the failure was handled")
	assert.Equal(t, 1, n.count())
	assert.Empty(t, second.Result().Cookies())
	assert.Empty(t, second.Result().Header.Get("Location"))
}

func TestRecoverConcurrentAuthFailuresCollapse(t *testing.T) {
	n := &recordingNotifier{}
	p := newTestProtocol(n)

	const workers = 8
	var wg sync.WaitGroup
	redirects := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			assert.True(t, p.Recover(w, r, authItem()))
			if w.Result().Header.Get("Location") != "" {
				redirects[i] = 1
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, v := range redirects {
		total += v
	}
	assert.Equal(t, 1, total, "exactly one caller navigates")
	assert.Equal(t, 1, n.count(), "exactly one notification")
	assert.Equal(t, StateRecovered, p.State())
}

func TestRecoverSkipsRedirectOnLoginSurface(t *testing.T) {
	p := newTestProtocol(&recordingNotifier{})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login", nil)

	require.True(t, p.Recover(w, r, authItem()))
	assert.Empty(t, w.Result().Header.Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies(), "cookies still cleared")
}

func TestRecoverRenderOnlyNavigates(t *testing.T) {
	n := &recordingNotifier{}
	p := newTestProtocol(n)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handled := p.RecoverRender(w, r, authItem())

	require.True(t, handled)
	assert.Equal(t, 0, n.count(), "render contexts must not notify; notifiers write cookies")

	res := w.Result()
	assert.Empty(t, res.Header.Values("Set-Cookie"), "render contexts must not write any cookie")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/auth/recover", res.Header.Get("Location"))
}

func TestRecoverRenderIdempotence(t *testing.T) {
	n := &recordingNotifier{}
	p := newTestProtocol(n)

	redirects := 0
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		require.True(t, p.RecoverRender(w, r, authItem()))
		if w.Result().Header.Get("Location") != "" {
			redirects++
		}
	}
	assert.Equal(t, 1, redirects)
	assert.Equal(t, 0, n.count())
}

func TestClearSessionCookiesSafeWithoutSession(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookies(w, session.DefaultConfig())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Equal(t, -1, c.MaxAge)
		assert.Empty(t, c.Value)
		assert.True(t, c.HttpOnly)
	}
}
