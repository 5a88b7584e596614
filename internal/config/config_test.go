package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := Load()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Installment.FirstDueOffsetDays)
	assert.Equal(t, 30, cfg.Installment.IntervalDays)
	assert.Equal(t, 2, cfg.Installment.MinCount)
	assert.Equal(t, 12, cfg.Installment.MaxCount)
	assert.Equal(t, 4, cfg.Installment.BookletPageSize)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	require.NoError(t, cfg.Installment.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("INSTALLMENT_MAX_COUNT", "24")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24, cfg.Installment.MaxCount)
}

func TestInstallmentConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     InstallmentConfig
		wantErr bool
	}{
		{"defaults", InstallmentConfig{30, 30, 2, 12, 4}, false},
		{"inverted range", InstallmentConfig{30, 30, 12, 2, 4}, true},
		{"zero interval", InstallmentConfig{30, 0, 2, 12, 4}, true},
		{"zero page size", InstallmentConfig{30, 30, 2, 12, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	app := AppConfig{Timezone: "Nowhere/Invalid"}
	assert.Equal(t, time.UTC, app.Location())
}
