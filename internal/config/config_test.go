package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphlite/internal/model"
	"github.com/born-ml/graphlite/internal/ops"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	fs.String("format", "NHWC", "")
	fs.Bool("compress", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, int64(model.DefaultMaxModelSize), cfg.Import.MaxModelSize)
	assert.Equal(t, ops.NHWC, cfg.Convert.Format)
	assert.True(t, cfg.Convert.Strict)
	assert.False(t, cfg.Output.Compress)
	assert.Positive(t, cfg.Verify.Workers)
}

func TestLoadPrecedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "graphlite.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
log:
  level: warn
  format: json
convert:
  format: nchw
  strict: false
import:
  max_model_size: 4096
`), 0o600))

	t.Setenv("GRAPHLITE_LOG_LEVEL", "debug")
	t.Setenv("GRAPHLITE_OUTPUT_COMPRESS", "true")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--format", "NHWC"}))

	cfg, err := Load(file, fs)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level, "environment beats file")
	assert.Equal(t, "json", cfg.Log.Format, "file beats default")
	assert.Equal(t, ops.NHWC, cfg.Convert.Format, "flag beats file")
	assert.False(t, cfg.Convert.Strict)
	assert.True(t, cfg.Output.Compress)
	assert.Equal(t, int64(4096), cfg.Import.MaxModelSize)
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("GRAPHLITE_CONVERT_FORMAT", "NC")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, ops.NC, cfg.Convert.Format)
}

func TestLoadRejects(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	t.Setenv("GRAPHLITE_CONVERT_FORMAT", "XYZ")
	_, err = Load("", nil)
	assert.ErrorContains(t, err, "convert.format")

	t.Setenv("GRAPHLITE_CONVERT_FORMAT", "NHWC")
	t.Setenv("GRAPHLITE_IMPORT_MAX_MODEL_SIZE", "-1")
	_, err = Load("", nil)
	assert.ErrorContains(t, err, "max_model_size")
}
