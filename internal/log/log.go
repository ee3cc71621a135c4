package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tuanvumaihuynh/crm-graphql/internal/config"
)

// NewSlogLogger creates the process logger and installs it as the slog default.
func NewSlogLogger(cfg config.Log) *slog.Logger {
	log := slog.New(newHandler(cfg, os.Stdout))
	slog.SetDefault(log)

	return log
}

func newHandler(cfg config.Log, w io.Writer) slog.Handler {
	var handler slog.Handler

	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			NoColor:    cfg.NoColor,
			TimeFormat: time.RFC3339,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Value.Kind() == slog.KindAny {
					if _, ok := a.Value.Any().(error); ok {
						return tint.Attr(9, a)
					}
				}
				return a
			},
		})
	}

	return newEnrichedHandler(handler, cfg.RedactPII)
}
