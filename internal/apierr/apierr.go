// Package apierr is the single seam between arbitrary transport failures and
// the display layer. Every failure produced by a boundary operation, whether
// a structured API error body, a wrapped network error, a panic value, or a
// bare string, passes through Parse before it reaches the user or the
// auth-failure detector.
package apierr

import (
	"encoding/json"
	"strings"

	"github.com/centavo-app/centavo/internal/errdefs"
	"github.com/centavo-app/centavo/internal/humanize"
)

// Payload is the structured failure body the remote API is expected to emit.
type Payload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Parse normalizes any failure value into display copy. Dispatch is by shape,
// most specific first; it never panics and never returns an empty result.
func Parse(raw any) humanize.Humanized {
	switch v := raw.(type) {
	case nil:
		return humanize.Humanize(errdefs.CodeInternal, "")
	case Payload:
		return fromPayload(v)
	case *Payload:
		if v == nil {
			return humanize.Humanize(errdefs.CodeInternal, "")
		}
		return fromPayload(*v)
	case error:
		return fromError(v)
	case string:
		// A bare string carries no classification; surface it verbatim.
		return humanize.Generic(v)
	case map[string]any:
		return fromMap(v)
	default:
		return humanize.Humanize(errdefs.CodeInternal, "")
	}
}

func fromPayload(p Payload) humanize.Humanized {
	if p.Code == "" && p.Message == "" {
		return humanize.Humanize(errdefs.CodeInternal, "")
	}
	if p.Code == "" {
		// Message-only body: best effort, default to the internal family.
		return humanize.Humanize(errdefs.CodeInternal, p.Message)
	}
	return humanize.Humanize(p.Code, p.Message)
}

func fromError(err error) humanize.Humanized {
	code := errdefs.CodeOf(err)
	if code == "" {
		// Unclassified error values (stdlib, third-party) stay technical and
		// internal; their text is not meant for users.
		return humanize.Humanize(errdefs.CodeInternal, "")
	}
	serverMessage, _ := errdefs.ServerMessageFrom(err)
	return humanize.Humanize(code, serverMessage)
}

func fromMap(m map[string]any) humanize.Humanized {
	code, _ := m["code"].(string)
	message, _ := m["message"].(string)
	return fromPayload(Payload{Code: code, Message: message})
}

// FromResponse classifies a non-2xx HTTP response into a taxonomy error,
// preferring the structured body over the bare status code. The returned
// error always carries a canonical code and an HTTP status.
func FromResponse(status int, body []byte) error {
	if p, ok := decodePayload(body); ok {
		code := p.Code
		if code == "" {
			code = errdefs.CodeForStatus(status)
		}
		return errdefs.NewByCode(code, p.Message)
	}
	return errdefs.NewByCode(errdefs.CodeForStatus(status), "")
}

// decodePayload attempts a strict decode of the expected failure body. Bodies
// that are not JSON objects, or that carry neither code nor message, are
// treated as unusable.
func decodePayload(body []byte) (Payload, bool) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed[0] != '{' {
		return Payload{}, false
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Payload{}, false
	}
	if p.Code == "" && p.Message == "" {
		return Payload{}, false
	}
	return p, true
}
