package utils

import "go.uber.org/zap"

// NewLogger returns the service logger. Debug mode gets zap's human-readable
// development config at debug level; otherwise JSON output at info level.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
