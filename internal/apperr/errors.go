// Package apperr holds the error kinds shared by the ranking, leaderboard and coaching services.
// Callers wrap them with fmt.Errorf("...: %w", ...) and inspect with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing input. Nothing was mutated.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an unknown user, workout, friendship or exercise.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an action on another user's resource.
	ErrForbidden = errors.New("forbidden")
	// ErrDependency marks an unavailable ledger or store; the operation is safe to retry.
	ErrDependency = errors.New("dependency unavailable")
	// ErrNoData marks a valid request that has nothing to show (not a failure).
	ErrNoData = errors.New("no data")
)

// HTTPStatus maps an error chain to a response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDependency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
