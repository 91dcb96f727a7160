package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"cpipulse/internal/cpi"
	"cpipulse/internal/dataprocessing"
	"cpipulse/internal/infrastructure"
)

// ErrorHandler provides centralized error handling: it maps pipeline
// errors to API error codes, logs with request context, and renders the
// standard envelope.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to the API envelope and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := infrastructure.TraceIDFromContext(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	apiErr := h.ToAPIError(err)
	render.Render(w, r, NewErrorResponse(apiErr))
}

// ToAPIError maps pipeline and transport errors to the API error envelope.
func (h *ErrorHandler) ToAPIError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "The request took too long to process and was cancelled")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return ErrPayloadTooLarge
	}

	var emptyRange *cpi.EmptyRangeError
	if errors.As(err, &emptyRange) {
		return NewWithDetails(http.StatusUnprocessableEntity, CodeEmptyRange,
			"No records fall within the selected date range", emptyRange.Error())
	}

	var divZero *cpi.DivisionByZeroError
	if errors.As(err, &divZero) {
		return NewWithDetails(http.StatusUnprocessableEntity, CodeDivisionByZero,
			"A series value used as a divisor is zero", map[string]interface{}{
				"column": divZero.Column,
				"index":  divZero.Index,
				"date":   divZero.Date.Format("2006-01-02"),
			})
	}

	var zeroVar *cpi.ZeroVarianceError
	if errors.As(err, &zeroVar) {
		return NewWithDetails(http.StatusUnprocessableEntity, CodeZeroVariance,
			"Correlation is undefined for a constant series", zeroVar.Column)
	}

	var malformed *dataprocessing.MalformedInputError
	if errors.As(err, &malformed) {
		return NewWithDetails(http.StatusBadRequest, CodeMalformedInput,
			"Uploaded table could not be parsed", map[string]interface{}{
				"line":   malformed.Line,
				"column": malformed.Column,
				"reason": malformed.Reason,
			})
	}

	return ErrInternalServer
}
