// Package logging configures the process-wide slog logger. The default is
// a colorized console handler; a JSON configuration document can override
// handler, level and destination.
package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lepinkainen/humanlog"
)

// ErrInvalidLogConfig indicates the supplied log-config file is not valid JSON.
// The process must terminate with exit code 1 when this is returned.
var ErrInvalidLogConfig = errors.New("invalid logging configuration")

// FileConfig is the schema of the optional --log-config JSON document.
type FileConfig struct {
	Level        string `json:"level"`
	Format       string `json:"format"`
	Output       string `json:"output"`
	AddSource    bool   `json:"add_source"`
	DisableColor bool   `json:"disable_color"`
}

// Setup installs the default slog logger. level is one of debug, info,
// warning, error, critical. configPath optionally names a JSON document; an
// unreadable or unparseable document yields ErrInvalidLogConfig.
func Setup(level string, configPath string) error {
	if configPath == "" {
		handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
			Level: ParseLevel(level),
		})
		slog.SetDefault(slog.New(handler))
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("%w: reading %q: %v", ErrInvalidLogConfig, configPath, err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("%w: file %q is not valid json: %v", ErrInvalidLogConfig, configPath, err)
	}

	if cfg.Level == "" {
		cfg.Level = level
	}

	handler, err := buildHandler(cfg)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func buildHandler(cfg FileConfig) (slog.Handler, error) {
	out, err := openOutput(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLogConfig, err)
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.NewJSONHandler(out, opts), nil
	case "text":
		return slog.NewTextHandler(out, opts), nil
	case "", "human":
		return humanlog.NewHandler(out, &humanlog.Options{
			Level:        ParseLevel(cfg.Level),
			DisableColor: cfg.DisableColor,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidLogConfig, cfg.Format)
	}
}

func openOutput(name string) (io.Writer, error) {
	switch name {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log output %q: %v", name, err)
		}
		return f, nil
	}
}

// ParseLevel maps the CLI level names to slog levels. "critical" maps above
// error so only the most severe records pass.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical":
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}
