package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/blogforge/blogforge/internal/errors"
)

// validationErrorPatterns matches the messages produced by the model
// Validate methods. Errors matching one of these map to 400 instead of 500.
var validationErrorPatterns = []string{ //nolint:gochecknoglobals // read-only pattern cache
	"is required and cannot be empty",
	"cannot be empty",
	"cannot exceed",
	"at least one field must be updated",
	"must be one of:",
	"must be at least",
	"must be a valid address",
}

// parseIntQuery returns the integer value of a query param, or def when the
// param is missing or malformed.
func parseIntQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// ParseLimitOffset parses the limit/offset pagination params, clamping the
// limit to [1, maxLimit] and the offset to >= 0.
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	maxLimit = max(maxLimit, 1)

	lim := min(max(parseIntQuery(r, "limit", defLimit), 1), maxLimit)
	off := max(parseIntQuery(r, "offset", 0), 0)
	return lim, off
}

// writeAppError maps a classified AppError to its HTTP status. Returns false
// when err carries no AppError or an internal one, leaving the caller's
// logged 500 fallback to run.
func writeAppError(w http.ResponseWriter, err error) bool {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case apperrors.ErrCodeConflict:
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
	case apperrors.ErrCodeValidation, apperrors.ErrCodeForeignKey:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	case apperrors.ErrCodeForbidden:
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: err})
	case apperrors.ErrCodeTimeout, apperrors.ErrCodeCanceled:
		WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, ErrCode: "unavailable", Err: err})
	default:
		return false
	}
	return true
}

// isValidationError decides 400 vs 500 for errors bubbling out of the service
// layer. Matching on message substrings is a stopgap until the models grow
// typed validation errors.
func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range validationErrorPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
