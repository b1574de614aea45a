// Package core provides the logging setup shared by the avisha packages.
package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewLogger builds a zap logger for mode. "prod" and "production" select the JSON production
// encoder; any other value selects the console development encoder.
func NewLogger(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger : %w", err)
	}
	return logger, nil
}

// CommandFields returns the fields attached to every log line of a dispatched command.
// A fresh time ordered id correlates the lines of one command.
func CommandFields(command string) []zap.Field {
	fields := []zap.Field{zap.String("command", command)}

	id, err := uuid.NewV7()
	if err != nil {
		return fields
	}
	return append(fields, zap.String("command_id", id.String()))
}
