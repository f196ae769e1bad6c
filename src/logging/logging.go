package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the process logger. Debug mode switches to the
// development config with human-readable output.
func New(debug bool) *zap.Logger {
	if debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// IsRateLimit reports whether a completion-provider error looks like a
// rate-limit rejection.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429")
}
