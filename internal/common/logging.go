package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const logTimeFormat = "15:04:05"

// NewLoggerFromConfig builds the arbor logger described by the [logging] section.
// Unknown outputs are ignored; with no usable output the logger falls back to the console.
func NewLoggerFromConfig(cfg LoggingConfig) arbor.ILogger {
	logger := arbor.NewLogger()

	hasConsole := false
	hasFile := false
	for _, output := range cfg.Outputs {
		switch output {
		case "console", "stdout":
			hasConsole = true
		case "file":
			hasFile = true
		}
	}

	if hasFile && cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create log directory: %v\n", err)
			hasConsole = true
		} else {
			logger = logger.WithFileWriter(models.WriterConfiguration{
				Type:             models.LogWriterTypeFile,
				FileName:         cfg.FilePath,
				TimeFormat:       logTimeFormat,
				MaxSize:          100 * 1024 * 1024, // 100 MB
				MaxBackups:       3,
				TextOutput:       true,
				DisableTimestamp: false,
			})
		}
	}

	if hasConsole || !hasFile {
		logger = logger.WithConsoleWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeConsole,
			TimeFormat:       logTimeFormat,
			TextOutput:       true,
			DisableTimestamp: false,
		})
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	return logger.WithLevelFromString(level)
}

// NewSilentLogger creates a logger with no writers attached
func NewSilentLogger() arbor.ILogger {
	return arbor.NewLogger()
}
