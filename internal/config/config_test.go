package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "bank.yaml", cfg.Bank.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "formbank.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, "html", cfg.Renderer)
}

func TestExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bank:
  path: surveys/wellness.yaml
server:
  addr: 127.0.0.1:9090
  token: s3cret
log:
  level: debug
  development: true
`), 0o600))

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "surveys/wellness.yaml", cfg.Bank.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Server.Token)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	// untouched keys keep their defaults
	assert.Equal(t, "formbank.db", cfg.Store.Path)
}

func TestExplicitConfigFileMissing(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
