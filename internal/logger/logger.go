package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level         string // debug, info, warn, error
	Format        string // json, pretty
	Dir           string // file logging is disabled when empty
	RotationSize  int    // MB
	RetentionDays int
	ServiceName   string
}

// Init initializes the global logger
func Init(cfg Config) error {
	return InitWithOutput(cfg, os.Stderr)
}

// InitWithOutput is Init with a custom console writer.
func InitWithOutput(cfg Config, console io.Writer) error {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer

	// Console writer
	if cfg.Format == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: "15:04:05",
		})
	} else {
		writers = append(writers, console)
	}

	// File writers
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		if cfg.RotationSize == 0 {
			cfg.RotationSize = 50
		}
		if cfg.RetentionDays == 0 {
			cfg.RetentionDays = 14
		}

		writers = append(writers, rotatingFile(cfg, "app.log"))
		writers = append(writers, &minLevelWriter{
			Writer: rotatingFile(cfg, "error.log"),
			min:    zerolog.ErrorLevel,
		})
	}

	multi := zerolog.MultiLevelWriter(writers...)

	ctx := zerolog.New(multi).With().Timestamp()
	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	log.Logger = ctx.Logger()

	log.Debug().
		Str("level", cfg.Level).
		Str("format", cfg.Format).
		Bool("file_enabled", cfg.Dir != "").
		Msg("Logger initialized")

	return nil
}

func rotatingFile(cfg Config, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    cfg.RotationSize,
		MaxAge:     cfg.RetentionDays,
		MaxBackups: 10,
		Compress:   true,
	}
}

// minLevelWriter drops events below min.
type minLevelWriter struct {
	io.Writer
	min zerolog.Level
}

func (w *minLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.min {
		return len(p), nil
	}
	return w.Writer.Write(p)
}
