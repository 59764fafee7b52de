// Package server provides the HTTP REST API for the valuation service.
package server

import (
	"errors"
	"net/http"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/chat"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/records"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/session"
)

// httpStatus returns the appropriate HTTP status code for an error
func httpStatus(err error) int {
	var chatErr *chat.ServiceError
	var persistErr *records.PersistenceError

	switch {
	case errors.Is(err, session.ErrNoContext):
		return http.StatusConflict
	case errors.Is(err, records.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.Is(err, records.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &chatErr):
		return http.StatusBadGateway
	case errors.As(err, &persistErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
