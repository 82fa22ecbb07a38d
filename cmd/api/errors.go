package main

import (
	"errors"
	"net/http"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

var (
	ErrInvalidID   = errors.New("invalid ID format")
	ErrMissingShop = errors.New("shop is required")
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusNotFound, "not found")
}

func (app *application) tooManyRequestsResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("throttled", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusTooManyRequests, err.Error())
}

func (app *application) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("provider failure", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusBadGateway, "messaging provider failure")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJsonError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// handleServiceError maps the service error taxonomy onto HTTP responses.
func (app *application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		app.notFoundError(w, r, err)
	case errors.Is(err, domain.ErrThrottled):
		app.tooManyRequestsResponse(w, r, err)
	case errors.Is(err, domain.ErrValidation):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrProvider):
		app.badGatewayResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
