package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Setup(LogConfig{Level: "debug", Format: "json", Output: path}))

	l := WithComponent("installments")
	l.Info().Str("sale_id", "abc").Msg("plan generated")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"installments"`)
	assert.Contains(t, string(data), `"message":"plan generated"`)
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Setup(LogConfig{Level: "loud"}))
}

func TestWithContextFallsBackToGlobal(t *testing.T) {
	assert.NotNil(t, WithContext(context.Background()))

	l := zerolog.New(os.Stderr).With().Str("request_id", "r-1").Logger()
	ctx := l.WithContext(context.Background())
	assert.Equal(t, &l, WithContext(ctx))
}
