// Package logging builds the zap logger used across memurbot.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/0xcro3dile/memurbot-go/internal/config"
)

// DefaultInteractiveFile receives logs while the terminal UI owns the screen.
const DefaultInteractiveFile = "memurbot.log"

// New builds a logger from cfg. Output goes to cfg.File when set, stderr otherwise.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch cfg.Format {
	case "json":
		zc.Encoding = "json"
	case "console", "":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("logging.format must be console or json, got %q", cfg.Format)
	}

	sink := "stderr"
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating log directory: %w", err)
			}
		}
		sink = cfg.File
	}
	zc.OutputPaths = []string{sink}
	zc.ErrorOutputPaths = []string{sink}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewInteractive is New with a file sink forced, so log lines never land
// on the terminal UI.
func NewInteractive(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		cfg.File = DefaultInteractiveFile
	}
	return New(cfg)
}
