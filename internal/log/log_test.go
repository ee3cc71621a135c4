package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/crm-graphql/internal/config"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/correlationid"
)

func TestEnrichedHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}, &buf))

	ctx := correlationid.NewContext(context.Background(), "req-42")
	logger.With(slog.String("service", "graphql")).InfoContext(ctx, "customer created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "customer created", entry["msg"])
	assert.Equal(t, "req-42", entry["correlation_id"])
	assert.Equal(t, "graphql", entry["service"])
	assert.NotContains(t, entry, "trace_id")
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(config.Log{Format: config.LogFormatText, Level: slog.LevelWarn}, &buf))

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestRedactPII(t *testing.T) {
	t.Run("Should mask contact attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(newHandler(config.Log{Format: config.LogFormatJSON, RedactPII: true}, &buf))

		logger.With(slog.String("email", "alice@example.com")).
			Info("row rejected", slog.String("phone", "+1234567890"), slog.Int("row", 2))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "a***@example.com", entry["email"])
		assert.Equal(t, "***7890", entry["phone"])
		assert.EqualValues(t, 2, entry["row"])
	})

	t.Run("Should keep contact attributes when disabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(newHandler(config.Log{Format: config.LogFormatJSON}, &buf))

		logger.Info("customer created", slog.String("email", "alice@example.com"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "alice@example.com", entry["email"])
	})
}

func TestMask(t *testing.T) {
	assert.Equal(t, "***", maskEmail("not-an-email"))
	assert.Equal(t, "b***@shop.io", maskEmail("bob@shop.io"))
	assert.Equal(t, "***", maskPhone("123"))
	assert.Equal(t, "***4567", maskPhone("123-4567"))
}
