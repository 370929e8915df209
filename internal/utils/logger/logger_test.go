package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/config"
)

func TestNew_ByEnv(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		env    string
		debug  bool
		pretty bool
	}{
		{env: config.EnvLocal, debug: true, pretty: true},
		{env: config.EnvDev, debug: true},
		{env: config.EnvProd},
		{env: ""},
		{env: "staging"},
	}

	for _, tc := range cases {
		t.Run("env="+tc.env, func(t *testing.T) {
			log := New(tc.env)
			require.NotNil(t, log)

			assert.Equal(t, tc.debug, log.Enabled(ctx, slog.LevelDebug))
			assert.True(t, log.Enabled(ctx, slog.LevelInfo))
			assert.True(t, log.Enabled(ctx, slog.LevelError))

			_, isPretty := log.Handler().(*PrettyHandler)
			assert.Equal(t, tc.pretty, isPretty)
		})
	}
}

func TestPrettyHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelWarn}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.Info("log saved", "id", "L1")
	assert.Empty(t, buf.String())

	log.Error("failed to mirror log", "id", "L1")
	assert.Contains(t, buf.String(), "failed to mirror log")
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "auth")

	log.Warn("remote sign out failed", "uid", "u1")

	out := buf.String()
	assert.Contains(t, out, "remote sign out failed")
	assert.Contains(t, out, `"component": "auth"`)
	assert.Contains(t, out, `"uid": "u1"`)
}
