package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{NewForbidden("no", nil), CodeForbidden, http.StatusForbidden},
		{NewMissingData("assigned_adjuster_id"), CodeMissingData, http.StatusBadRequest},
		{NewInvalidReference("unknown adjuster", nil), CodeInvalidReference, http.StatusUnprocessableEntity},
		{NewInvalidValue("negative amount", nil), CodeInvalidValue, http.StatusBadRequest},
		{NewConflict("stale status", nil), CodeConflict, http.StatusConflict},
		{NewNotFound("claim", nil), CodeNotFound, http.StatusNotFound},
		{NewValidationError("bad payload", nil), CodeValidation, http.StatusBadRequest},
		{NewUnauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{NewInternalError(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
		})
	}
}

func TestHasCode(t *testing.T) {
	err := NewConflict("stale status", nil)

	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(nil, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeConflict))

	wrapped := fmt.Errorf("executing transition: %w", err)
	assert.True(t, HasCode(wrapped, CodeConflict))
}

func TestToDomainErrorFallback(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)

	original := NewForbidden("no", nil)
	assert.Same(t, ToDomainError(original), ToDomainError(original))
	assert.Equal(t, CodeForbidden, ToDomainError(original).Code)
}
