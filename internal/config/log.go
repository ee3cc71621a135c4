package config

import (
	"fmt"
	"log/slog"
	"strings"
)

type Log struct {
	Format    LogFormat  `env:"LOG_FORMAT" envDefault:"JSON"`
	Level     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	AddSource bool       `env:"LOG_ADD_SOURCE" envDefault:"true"`
	// NoColor disables ANSI colors of the TEXT format.
	NoColor bool `env:"LOG_NO_COLOR" envDefault:"false"`
	// RedactPII masks customer emails and phone numbers in log attributes.
	RedactPII bool `env:"LOG_REDACT_PII" envDefault:"true"`
}

// LogFormat is the encoding of log lines: JSON for shipping, TEXT for
// terminals.
type LogFormat uint8

const (
	LogFormatJSON LogFormat = iota
	LogFormatText
)

var logFormatNames = map[LogFormat]string{
	LogFormatJSON: "JSON",
	LogFormatText: "TEXT",
}

func (f LogFormat) String() string {
	if name, ok := logFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("LogFormat(%d)", f)
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Matching is case
// insensitive.
func (f *LogFormat) UnmarshalText(text []byte) error {
	want := strings.ToUpper(strings.TrimSpace(string(text)))
	for format, name := range logFormatNames {
		if name == want {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("unknown log format: %s", text)
}

func (f LogFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
