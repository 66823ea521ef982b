package app

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsInvalidRequestError(t *testing.T) {
	stdErr := errors.New("simple error")
	assert.False(t, IsInvalidRequestError(stdErr))

	irErr := InvalidRequestError("invalid request")
	assert.True(t, IsInvalidRequestError(irErr))

	wrapperErr := fmt.Errorf("wrapping message: %w", irErr)
	assert.True(t, IsInvalidRequestError(wrapperErr))
}

func TestIsNotFoundError(t *testing.T) {
	stdErr := errors.New("simple error")
	assert.False(t, IsNotFoundError(stdErr))

	nfErr := NotFoundError("repository not found")
	assert.True(t, IsNotFoundError(nfErr))

	wrapperErr := fmt.Errorf("wrapping message: %w", nfErr)
	assert.True(t, IsNotFoundError(wrapperErr))

	causeErr := pkgerrors.Wrap(nfErr, "wrapping message")
	assert.True(t, IsNotFoundError(causeErr))
}

func TestIsTooManyRequestsError(t *testing.T) {
	stdErr := errors.New("simple error")
	assert.False(t, IsTooManyRequestsError(stdErr))

	tmrErr := TooManyRequestsError("limiter exhausted")
	assert.True(t, IsTooManyRequestsError(tmrErr))

	wrapperErr := fmt.Errorf("wrapping message: %w", tmrErr)
	assert.True(t, IsTooManyRequestsError(wrapperErr))
}

func TestIsRemoteResponseError(t *testing.T) {
	stdErr := errors.New("simple error")
	assert.False(t, IsRemoteResponseError(stdErr))

	rrErr := &RemoteResponseError{StatusCode: http.StatusForbidden, Message: "rate limit exceeded"}
	assert.True(t, IsRemoteResponseError(rrErr))
	assert.Contains(t, rrErr.Error(), "403")
	assert.Contains(t, rrErr.Error(), "rate limit exceeded")

	wrapperErr := fmt.Errorf("wrapping message: %w", rrErr)
	assert.True(t, IsRemoteResponseError(wrapperErr))

	causeErr := pkgerrors.Wrap(rrErr, "wrapping message")
	assert.True(t, IsRemoteResponseError(causeErr))
}
