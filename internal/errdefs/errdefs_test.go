package errdefs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamily(t *testing.T) {
	assert.Equal(t, "UNAUTHORIZED", Family("UNAUTHORIZED/TOKEN_EXPIRED"))
	assert.Equal(t, "CONFLICT", Family("CONFLICT/EMAIL_ALREADY_EXISTS"))
	assert.Equal(t, "NOT_FOUND", Family("NOT_FOUND"))
	assert.Equal(t, "", Family(""))
}

func TestNewByCodeExactMatch(t *testing.T) {
	err := NewByCode(CodeTokenExpired, "expired at noon")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenExpired))
	assert.Equal(t, CodeTokenExpired, CodeOf(err))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	msg, ok := ServerMessageFrom(err)
	require.True(t, ok)
	assert.Equal(t, "expired at noon", msg)
}

func TestNewByCodeUnknownSubtypeDegradesToFamily(t *testing.T) {
	err := NewByCode("CONFLICT/SOMETHING_NEW", "")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.Equal(t, http.StatusConflict, StatusOf(err))
}

func TestNewByCodeUnknownFamilyDegradesToInternal(t *testing.T) {
	err := NewByCode("TOTALLY_UNKNOWN", "backend detail")

	assert.True(t, errors.Is(err, ErrInternal))
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))

	msg, ok := ServerMessageFrom(err)
	require.True(t, ok)
	assert.Equal(t, "backend detail", msg)
}

func TestNewByCodeWithoutServerMessage(t *testing.T) {
	err := NewByCode(CodeNotFound, "")

	_, ok := ServerMessageFrom(err)
	assert.False(t, ok)
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, CodeBadRequest, CodeForStatus(http.StatusBadRequest))
	assert.Equal(t, CodeUnauthorized, CodeForStatus(http.StatusUnauthorized))
	assert.Equal(t, CodeForbidden, CodeForStatus(http.StatusForbidden))
	assert.Equal(t, CodeNotFound, CodeForStatus(http.StatusNotFound))
	assert.Equal(t, CodeConflict, CodeForStatus(http.StatusConflict))
	assert.Equal(t, CodeServiceUnavailable, CodeForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, CodeGatewayTimeout, CodeForStatus(http.StatusGatewayTimeout))
	assert.Equal(t, CodeInternal, CodeForStatus(http.StatusInternalServerError))
	assert.Equal(t, CodeInternal, CodeForStatus(599))
}

func TestCodeOfUnclassifiedError(t *testing.T) {
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestCodeOfWrappedError(t *testing.T) {
	inner := ErrServiceUnavailable.New("connect refused")
	wrapped := fmt.Errorf("fetching accounts: %w", inner)

	assert.Equal(t, CodeServiceUnavailable, CodeOf(wrapped))
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(wrapped))
}

func TestIsAuthCode(t *testing.T) {
	assert.True(t, IsAuthCode(CodeUnauthorized))
	assert.True(t, IsAuthCode(CodeTokenExpired))
	assert.True(t, IsAuthCode(CodeInvalidToken))
	assert.True(t, IsAuthCode(CodeForbidden))
	assert.True(t, IsAuthCode("FORBIDDEN/SOME_SUBTYPE"))

	assert.False(t, IsAuthCode(CodeConflict))
	assert.False(t, IsAuthCode(CodeInternal))
	assert.False(t, IsAuthCode(""))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(ErrUnauthorized.New("no session")))
	assert.True(t, IsAuthError(ErrTokenExpired.New("stale")))
	assert.True(t, IsAuthError(fmt.Errorf("wrapped: %w", ErrForbidden.New("nope"))))

	assert.False(t, IsAuthError(ErrNotFound.New("missing")))
	assert.False(t, IsAuthError(errors.New("plain")))
	assert.False(t, IsAuthError(nil))
}
