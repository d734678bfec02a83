// Package session reads and decodes the session credential from the
// per-request cookie jar. Decoding is deliberately unverified: token
// integrity and expiry are enforced by the remote API, which rejects forged
// or stale tokens with an authentication failure that the recovery protocol
// intercepts. Verifying here as well would only double-handle that path.
// Local claims exist for UX convenience (greeting, identifier routing) and
// never gate access to data.
package session

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config names the session cookies and orders the claims scanned for the
// canonical user identifier. The candidate list is configuration, not a
// contract: the token-issuing backend can change its claim layout without a
// coordinated release.
type Config struct {
	// CookieName is the short-lived primary session credential.
	CookieName string `yaml:"cookie_name"`
	// RefreshCookieName is the longer-lived secondary credential. This layer
	// never reads it; it exists so the recovery route can clear it.
	RefreshCookieName string `yaml:"refresh_cookie_name"`
	// ClaimCandidates is scanned in order for a UUID-shaped user identifier
	// before falling back to the standard subject claim.
	ClaimCandidates []string `yaml:"claim_candidates"`
}

// DefaultConfig returns the cookie names and claim order used by the
// production token issuer.
func DefaultConfig() Config {
	return Config{
		CookieName:        "centavo_session",
		RefreshCookieName: "centavo_refresh",
		ClaimCandidates:   []string{"userId", "user_id", "uid", "id"},
	}
}

// Claims is the opaque key/value map decoded from the session token.
type Claims map[string]any

// Accessor decodes session state from request cookies. It performs no
// network calls and caches nothing across requests.
type Accessor struct {
	cfg    Config
	parser *jwt.Parser
}

// NewAccessor creates an accessor, filling zero config fields with defaults.
func NewAccessor(cfg Config) *Accessor {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.RefreshCookieName == "" {
		cfg.RefreshCookieName = def.RefreshCookieName
	}
	if len(cfg.ClaimCandidates) == 0 {
		cfg.ClaimCandidates = def.ClaimCandidates
	}
	return &Accessor{cfg: cfg, parser: jwt.NewParser()}
}

// Config returns the accessor's effective configuration.
func (a *Accessor) Config() Config {
	return a.cfg
}

// Token returns the raw session credential from the cookie jar, or "" when
// absent. The value is attached verbatim as the bearer credential on
// boundary operations.
func (a *Accessor) Token(r *http.Request) string {
	c, err := r.Cookie(a.cfg.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Session decodes the session token into its claims map. Absent cookie and
// structurally undecodable token both yield nil; neither is an error. No
// signature or expiry check is performed.
func (a *Accessor) Session(r *http.Request) Claims {
	token := a.Token(r)
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := a.parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return Claims(claims)
}

// CurrentUserID resolves the canonical user identifier from the session
// claims: the first candidate claim whose value is a trimmed, UUID-shaped
// string wins; the subject claim is consulted last under the same format
// constraint. "" means no identity is available, which is an absence, not an
// error.
func (a *Accessor) CurrentUserID(r *http.Request) string {
	claims := a.Session(r)
	if claims == nil {
		return ""
	}

	for _, name := range a.cfg.ClaimCandidates {
		if id, ok := uuidClaim(claims[name]); ok {
			return id
		}
	}
	if id, ok := uuidClaim(claims["sub"]); ok {
		return id
	}
	return ""
}

// uuidClaim accepts a claim value only if it is a non-empty trimmed string in
// canonical UUID form, versions 1 through 5.
func uuidClaim(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	// uuid.Parse also accepts urn:uuid: prefixes, braces, and bare 32-hex;
	// only the 36-character hyphenated form counts as canonical.
	if len(s) != 36 {
		return "", false
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	if v := u.Version(); v < 1 || v > 5 {
		return "", false
	}
	return s, true
}
