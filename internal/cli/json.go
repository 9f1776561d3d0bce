package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rileyhilliard/sysdash/internal/errors"
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
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound     = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid      = "CONFIG_INVALID"
	ErrCodeTerminal           = "TERMINAL"
	ErrCodeStateUnavailable   = "STATE_UNAVAILABLE"
	ErrCodeMetricsUnavailable = "METRICS_UNAVAILABLE"
	ErrCodeUnknown            = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
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

	var sdErr *errors.Error
	if errors.As(err, &sdErr) {
		return &JSONError{
			Code:       mapErrorCode(sdErr.Code, sdErr.Message),
			Message:    sdErr.Message,
			Suggestion: sdErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(code, message string) string {
	switch code {
	case errors.ErrConfig:
		if strings.Contains(message, "config file not found") || message == "Config file not found" {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrTerminal:
		return ErrCodeTerminal
	case errors.ErrState:
		return ErrCodeStateUnavailable
	case errors.ErrProvider:
		return ErrCodeMetricsUnavailable
	default:
		return ErrCodeUnknown
	}
}
