// Package action defines the result contract every boundary operation
// honors: a tagged success/error union that callers can branch on without
// ever handling a raw error or a panic. Failures arrive as a non-empty list
// of humanized items, the first being primary.
package action

import (
	"context"
	"encoding/json"

	"github.com/centavo-app/centavo/internal/apierr"
	"github.com/centavo-app/centavo/internal/errdefs"
)

// Status discriminates the two arms of a Result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorItem is one humanized failure. Title and Message are always present
// and already display-ready; Code and StatusCode are machine-readable hints
// consumed by the auth-failure detector, never shown to the user.
type ErrorItem struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// Result is the discriminated union returned by every boundary operation.
// Exactly one of Data/Errors is populated; callers must branch on Status
// before touching Data.
type Result[T any] struct {
	Status Status      `json:"status"`
	Data   T           `json:"data,omitempty"`
	Errors []ErrorItem `json:"errors,omitempty"`
}

// MarshalJSON emits only the populated arm. Struct-tag omitempty cannot do
// this: it is inert for non-pointer struct payloads, which would leak a
// "data" key next to "errors" on failures of struct-typed operations.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Status == StatusError {
		return json.Marshal(struct {
			Status Status      `json:"status"`
			Errors []ErrorItem `json:"errors"`
		}{Status: r.Status, Errors: r.Errors})
	}
	return json.Marshal(struct {
		Status Status `json:"status"`
		Data   T      `json:"data"`
	}{Status: r.Status, Data: r.Data})
}

// OK builds a success result.
func OK[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

// Fail builds an error result. The error list is guaranteed non-empty: with
// no items it degrades to a generic internal failure.
func Fail[T any](items ...ErrorItem) Result[T] {
	if len(items) == 0 {
		items = []ErrorItem{ItemFromError(errdefs.ErrInternal.New("unclassified failure"))}
	}
	return Result[T]{Status: StatusError, Errors: items}
}

// Succeeded reports whether the result carries data.
func (r Result[T]) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Primary returns the first error item, or a zero item for success results.
func (r Result[T]) Primary() ErrorItem {
	if len(r.Errors) == 0 {
		return ErrorItem{}
	}
	return r.Errors[0]
}

// ItemFromError humanizes a classified (or arbitrary) error into an item,
// preserving the canonical code and HTTP status as machine hints.
func ItemFromError(err error) ErrorItem {
	h := apierr.Parse(err)
	return ErrorItem{
		Title:      h.Title,
		Message:    h.Description,
		Code:       errdefs.CodeOf(err),
		StatusCode: errdefs.StatusOf(err),
	}
}

// Do runs one boundary operation and converts every way it can fail, error
// return or panic alike, into an error result. No exception ever escapes:
// callers can treat every boundary call as value-returning.
func Do[T any](ctx context.Context, fn func(context.Context) (T, error)) (res Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			err := errdefs.ErrInternal.Recover(func() error { panic(rec) })
			res = Fail[T](ItemFromError(err))
		}
	}()

	data, err := fn(ctx)
	if err != nil {
		return Fail[T](ItemFromError(err))
	}
	return OK(data)
}
