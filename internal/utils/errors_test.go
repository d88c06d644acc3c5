package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	plain := NewAppError(ErrInvalidInput, "Title is required", nil)
	assert.Equal(t, "Title is required", plain.Error())

	wrapped := NewDatabaseError("save post", errors.New("connection reset"))
	assert.Contains(t, wrapped.Error(), "save post")
	assert.Contains(t, wrapped.Error(), "connection reset")
}

func TestIsErrorCode(t *testing.T) {
	err := NewPostNotFoundError("abc")
	assert.True(t, IsErrorCode(err, ErrPostNotFound))
	assert.False(t, IsErrorCode(err, ErrCommentNotFound))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrPostNotFound))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(NewUnauthorizedError("no session")))
	assert.True(t, IsAuthError(NewForbiddenError("not the author")))
	assert.False(t, IsAuthError(NewValidationError("bad input")))
	assert.False(t, IsAuthError(errors.New("plain")))
}

func TestAppErrorToHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrPostNotFound:       http.StatusNotFound,
		ErrCommentNotFound:    http.StatusNotFound,
		ErrUserNotFound:       http.StatusNotFound,
		ErrInvalidInput:       http.StatusBadRequest,
		ErrWeakPassword:       http.StatusBadRequest,
		ErrInvalidReferral:    http.StatusBadRequest,
		ErrUnauthorized:       http.StatusUnauthorized,
		ErrInvalidCredentials: http.StatusUnauthorized,
		ErrForbidden:          http.StatusForbidden,
		ErrEmailTaken:         http.StatusConflict,
		ErrNicknameTaken:      http.StatusConflict,
		ErrDuplicate:          http.StatusConflict,
		ErrDatabase:           http.StatusInternalServerError,
		ErrActorTimeout:       http.StatusInternalServerError,
		"SOMETHING_ELSE":      http.StatusInternalServerError,
	}

	for code, want := range cases {
		assert.Equal(t, want, AppErrorToHTTPStatus(code), code)
	}
}
