package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/hostdash/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound    = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid     = "CONFIG_INVALID"
	ErrCodeResourceNotFound  = "RESOURCE_NOT_FOUND"
	ErrCodeMetricUnavailable = "METRIC_UNAVAILABLE"
	ErrCodeReadFailed        = "READ_FAILED"
	ErrCodeCommandFailed     = "COMMAND_FAILED"
	ErrCodeUnknown           = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFailure writes an unsuccessful response that still carries data,
// e.g. check results where some checks failed.
func WriteJSONFailure(w io.Writer, data interface{}, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Data:    data,
		Error:   ErrorToJSON(err),
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var hdErr *errors.Error
	if stderrors.As(err, &hdErr) {
		return &JSONError{
			Code:       mapErrorCode(hdErr.Code, hdErr.Message),
			Message:    hdErr.Message,
			Suggestion: hdErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		msgLower := strings.ToLower(message)
		switch {
		case strings.Contains(msgLower, "config file") && strings.Contains(msgLower, "not found"),
			strings.Contains(msgLower, "no config file"):
			return ErrCodeConfigNotFound
		case strings.Contains(msgLower, "not found"):
			return ErrCodeResourceNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrUnavailable:
		return ErrCodeMetricUnavailable
	case errors.ErrTransient:
		return ErrCodeReadFailed
	case errors.ErrExec:
		return ErrCodeCommandFailed
	}

	return ErrCodeUnknown
}
