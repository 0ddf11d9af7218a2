package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/joe/music-scan/internal/config"
)

// newLogger builds the process logger. Logs go to --log-file when set and to
// stderr unless the progress view owns the terminal. Console encoding is used
// when a person reads stderr, JSON when only a file is written.
func newLogger(cfg *config.Config, interactive bool) (*zap.Logger, error) {
	var outputs []string

	if cfg.LogFile != "" {
		outputs = append(outputs, cfg.LogFile)
	}

	if !interactive {
		outputs = append(outputs, "stderr")
	}

	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}

	zapConfig := zap.NewProductionConfig()
	if !interactive {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zapConfig.OutputPaths = outputs
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.DisableStacktrace = true
	// Every walk error is logged; none may be sampled away.
	zapConfig.Sampling = nil

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
