package common_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrryniu/invoice-ingest/internal/common"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := common.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(20<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "pol+eng", cfg.OCR.Language)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, 32, cfg.OCR.MinTextLayerChars)
	assert.Equal(t, 1, cfg.Queue.Workers)
	assert.Equal(t, 256, cfg.Queue.Size)
	assert.Equal(t, 3*time.Minute, cfg.Queue.ProcessTimeout)
	assert.Equal(t, time.Hour, cfg.Queue.Retention)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DOCINGEST_QUEUE_WORKERS", "4")
	t.Setenv("DOCINGEST_OCR_LANGUAGE", "pol")
	t.Setenv("DOCINGEST_LOG_FORMAT", "json")

	cfg, err := common.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, "pol", cfg.OCR.Language)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestWrapError(t *testing.T) {
	err := common.WrapError(common.ErrJobNotFound, "lookup job")
	assert.ErrorIs(t, err, common.ErrJobNotFound)
	assert.Contains(t, err.Error(), "lookup job")

	assert.NoError(t, common.WrapError(nil, "lookup job"))
}
