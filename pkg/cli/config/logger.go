package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level string
	JSON  bool

	// Output overrides the log destination. Defaults to stdout.
	Output io.Writer

	secrets []string
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("TUGBOAT_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("TUGBOAT_LOG_JSON"),
		},
	}
}

// HideSecrets registers runtime credential values. Any logged string that
// contains one of them is redacted. Call before Configure.
func (c *Logger) HideSecrets(values ...string) {
	for _, v := range values {
		if v != "" {
			c.secrets = append(c.secrets, v)
		}
	}
}

// Configure builds the logger: a colored console handler by default, plain
// JSON for log collectors. Both share the masq redaction filter.
func (c *Logger) Configure() (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.New("unknown log level", goerr.V("level", c.Level))
	}

	out := c.Output
	if out == nil {
		out = os.Stdout
	}
	redact := c.redactor()

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: redact,
		})
	} else {
		handler = clog.New(
			clog.WithWriter(out),
			clog.WithLevel(level),
			clog.WithReplaceAttr(redact),
		)
	}

	return slog.New(handler), nil
}

// redactor masks struct fields tagged `masq:"secret"`, anything containing a
// token-bearing push URL, and every registered secret value.
func (c *Logger) redactor() func([]string, slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithTag("secret"),
		masq.WithContain("x-access-token"),
	}
	for _, v := range c.secrets {
		opts = append(opts, masq.WithContain(v))
	}
	return masq.New(opts...)
}
