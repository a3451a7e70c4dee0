package main

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/builder"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/repo"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err)

	writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err)

	writeJsonError(w, http.StatusBadRequest, err.Error())
}

// fieldValidationResponse renders validator failures as a field-level error
// list with a 400.
func (app *application) fieldValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
	}

	app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "fields", len(fields))

	writeJson(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err)

	writeJsonError(w, http.StatusNotFound, "not found")
}

// conflictResponse reports a rejected builder operation. Nothing was
// persisted; the notice tells the user why.
func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, notice builder.Notice) {
	app.logger.Infow("operation rejected", "method", r.Method, "path", r.URL.Path, "code", notice.Code)

	writeJson(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "operation rejected",
		"notice": notice,
	})
}

// repoError maps storage errors onto 404 or 500.
func (app *application) repoError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		app.notFoundError(w, r, err)
		return
	}
	app.internalServerError(w, r, err)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJsonError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}
