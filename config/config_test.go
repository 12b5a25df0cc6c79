package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5001", cfg.ServerPort)
	assert.Equal(t, 10, cfg.PortFallbackAttempts)
	assert.Equal(t, "gate-tracker", cfg.Auth.Issuer)
	assert.Equal(t, "./inbox", cfg.Ingestion.InboxDir)
	assert.Equal(t, "pdftotext", cfg.Ingestion.PdftotextPath)
	assert.InDelta(t, 0.6, cfg.Suggest.ReviewThreshold, 1e-9)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GATE_SERVER_PORT", ":6000")
	t.Setenv("GATE_AUTH_ISSUER", "firm.example.com")
	t.Setenv("GATE_SUGGEST_REVIEW_THRESHOLD", "0.75")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.ServerPort)
	assert.Equal(t, "firm.example.com", cfg.Auth.Issuer)
	assert.InDelta(t, 0.75, cfg.Suggest.ReviewThreshold, 1e-9)
}

func TestLoadConfig_RejectsBadThreshold(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GATE_SUGGEST_REVIEW_THRESHOLD", "1.5")

	_, err := LoadConfig()
	assert.Error(t, err)
}
