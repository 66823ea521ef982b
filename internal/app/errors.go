package app

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidRequestError is special error type returned when any request params are invalid.
type InvalidRequestError string

// Error implements error interface.
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request.
func IsInvalidRequestError(err error) bool {
	type invalidReqErr interface {
		IsInvalidRequest() bool
	}

	var ire invalidReqErr
	if errors.As(errors.Cause(err), &ire) {
		return ire.IsInvalidRequest()
	}

	return false
}

// NotFoundError is returned when a repository key or command name matches nothing.
type NotFoundError string

// Error implements error interface.
func (e NotFoundError) Error() string {
	return string(e)
}

// IsNotFound tells that this error is 'not found'.
// Returns always true.
func (NotFoundError) IsNotFound() bool {
	return true
}

// IsNotFoundError checks if given error is caused by a missing entity.
func IsNotFoundError(err error) bool {
	type notFoundErr interface {
		IsNotFound() bool
	}

	var nfe notFoundErr
	if errors.As(errors.Cause(err), &nfe) {
		return nfe.IsNotFound()
	}

	return false
}

// TooManyRequestsError is returned when call rate limits are exhausted.
type TooManyRequestsError string

// Error implements error interface.
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequests tells that this error is 'too many requests'.
// Returns always true.
func (TooManyRequestsError) IsTooManyRequests() bool {
	return true
}

// IsTooManyRequestsError checks if given error is caused by exhausted rate limits.
func IsTooManyRequestsError(err error) bool {
	type tooManyReqErr interface {
		IsTooManyRequests() bool
	}

	var tmr tooManyReqErr
	if errors.As(errors.Cause(err), &tmr) {
		return tmr.IsTooManyRequests()
	}

	return false
}

// RemoteResponseError is a non-2xx answer from the remote api. The request
// reached the server, so callers may choose to degrade the affected data
// instead of failing the whole operation. Transport-level failures are plain
// wrapped errors and always propagate.
type RemoteResponseError struct {
	StatusCode int
	Message    string
}

// Error implements error interface.
func (e *RemoteResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote api returned status %d: %s", e.StatusCode, e.Message)
}

// IsRemoteResponse tells that this error is a remote non-2xx response.
// Returns always true.
func (*RemoteResponseError) IsRemoteResponse() bool {
	return true
}

// IsRemoteResponseError checks if given error is caused by a non-2xx remote response.
func IsRemoteResponseError(err error) bool {
	type remoteRespErr interface {
		IsRemoteResponse() bool
	}

	var rre remoteRespErr
	if errors.As(errors.Cause(err), &rre) {
		return rre.IsRemoteResponse()
	}

	return false
}
