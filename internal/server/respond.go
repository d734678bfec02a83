package server

import (
	"encoding/json"
	"net/http"

	"github.com/centavo-app/centavo/internal/action"
	"github.com/centavo-app/centavo/internal/apierr"
	"github.com/centavo-app/centavo/internal/errdefs"
	"github.com/centavo-app/centavo/internal/recovery"
)

// writeResult sends one boundary operation's result. Failures carrying an
// authentication signature are handed to the recovery protocol first; when it
// fires, recovery owns the response and the envelope is suppressed, since the
// failure was already communicated through the notification and navigation.
func writeResult[T any](s *Server, w http.ResponseWriter, r *http.Request, res action.Result[T]) {
	if !res.Succeeded() {
		if item, ok := recovery.FirstAuthItem(res.Errors); ok {
			if s.protocol(w).Recover(w, r, item) {
				return
			}
		}
	}
	writeEnvelope(w, resultStatus(res), res)
}

// resultStatus maps a result to its HTTP status: 200 on success, the primary
// item's status on failure, 500 when the failure carries no status hint.
func resultStatus[T any](res action.Result[T]) int {
	if res.Succeeded() {
		return http.StatusOK
	}
	if sc := res.Primary().StatusCode; sc > 0 {
		return sc
	}
	return http.StatusInternalServerError
}

func writeEnvelope(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readJSON decodes a request body, reporting malformed input as a humanized
// bad-request failure rather than an error the handler has to shape itself.
func readJSON[T any](r *http.Request, dst *T) (action.ErrorItem, bool) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		bad := errdefs.ErrBadRequest.Wrapf(err, "decode request body")
		h := apierr.Parse(bad)
		return action.ErrorItem{
			Title:      h.Title,
			Message:    h.Description,
			Code:       errdefs.CodeBadRequest,
			StatusCode: http.StatusBadRequest,
		}, false
	}
	return action.ErrorItem{}, true
}
