package identity

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeNotAuthorizedOrNotFound is the service error code used for missing
// permissions. The service reports it with a 404 status so callers cannot
// probe for resource existence.
const CodeNotAuthorizedOrNotFound = "NotAuthorizedOrNotFound"

// RequestError wraps a failed identity API call with service context.
type RequestError struct {
	// Op is the API operation, e.g. "ListPolicies"
	Op string

	// Resource is the id or endpoint the call was about
	Resource string

	// StatusCode is the HTTP status from the service, 0 if the call never
	// completed
	StatusCode int

	// Code is the service error code, e.g. "NotAuthorizedOrNotFound"
	Code string

	// Message is the service error message
	Message string
}

func (e *RequestError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s failed: %s (status %d, code %s)", e.Op, e.Resource, e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s %s failed: %s (status %d)", e.Op, e.Resource, e.Message, e.StatusCode)
}

// UserNotFoundError is returned when a user id matches neither a legacy IAM
// user nor a user in any identity domain.
type UserNotFoundError struct {
	UserID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user '%s' not found in any identity domain or legacy IAM", e.UserID)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var userErr *UserNotFoundError
	if errors.As(err, &userErr) {
		return true
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized returns true if the error indicates missing permissions.
// Besides plain 401/403 responses this covers the NotAuthorizedOrNotFound
// code, which arrives with a 404 status.
func IsUnauthorized(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}

	if reqErr.StatusCode == http.StatusUnauthorized || reqErr.StatusCode == http.StatusForbidden {
		return true
	}

	return reqErr.Code == CodeNotAuthorizedOrNotFound
}

// IsTransient returns true if the failure is throttling or a server-side
// error that a later retry may clear.
func IsTransient(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}

	return reqErr.StatusCode == http.StatusTooManyRequests || reqErr.StatusCode >= 500
}
