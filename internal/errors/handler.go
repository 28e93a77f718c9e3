package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"dscat/internal/catalog"
	"dscat/internal/infrastructure"
	"dscat/internal/parser"
)

// ErrorHandler provides centralized mapping from domain errors to API
// responses.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &ErrorHandler{
		logger: infrastructure.WithComponent(logger, "error_handler"),
	}
}

// HandleError converts any error to an APIError and responds with it.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	apiErr := h.mapError(err)

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", apiErr.StatusCode),
			slog.String("error", err.Error()))
	} else {
		h.logger.WarnContext(r.Context(), "request rejected",
			slog.String("path", r.URL.Path),
			slog.Int("status", apiErr.StatusCode),
			slog.String("error", err.Error()))
	}

	if renderErr := render.Render(w, r, apiErr); renderErr != nil {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
	}
}

// mapError resolves the domain error taxonomy into API responses.
func (h *ErrorHandler) mapError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var unknown *catalog.UnknownSourceError
	if errors.As(err, &unknown) {
		return NewWithDetails(http.StatusNotFound, "SOURCE_NOT_FOUND", unknown.Error(), unknown.Name)
	}

	var duplicate *catalog.DuplicateSourceError
	if errors.As(err, &duplicate) {
		return NewWithDetails(http.StatusConflict, "SOURCE_CONFLICT", duplicate.Error(), duplicate.Name)
	}

	var unsupported *catalog.UnsupportedKindError
	if errors.As(err, &unsupported) {
		return NewWithDetails(http.StatusBadRequest, "UNSUPPORTED_KIND", unsupported.Error(), unsupported.Supported)
	}

	var malformed *parser.MalformedRowError
	if errors.As(err, &malformed) {
		return NewWithDetails(http.StatusUnprocessableEntity, "MALFORMED_DATA", malformed.Error(), map[string]any{
			"line": malformed.Line,
			"got":  malformed.Got,
			"want": malformed.Want,
		})
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeNotFound:
			return NewWithDetails(http.StatusNotFound, "NOT_FOUND", appErr.Message, appErr.Context)
		case ErrTypeValidation:
			return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Message, appErr.Context)
		case ErrTypeConflict:
			return NewWithDetails(http.StatusConflict, "SOURCE_CONFLICT", appErr.Message, appErr.Context)
		case ErrTypeParsing, ErrTypeExtraction:
			return NewWithDetails(http.StatusUnprocessableEntity, "MALFORMED_DATA", appErr.Message, appErr.Context)
		}
	}

	return ErrInternalServer
}
