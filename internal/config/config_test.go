package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("QUILL_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUILL_HOME", dir)

	content := "api_url: https://api.quillforge.io/api/v1\nlog_level: debug\ntimeout: 10s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.quillforge.io/api/v1", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "text", cfg.LogFormat, "unset fields keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUILL_HOME", dir)
	t.Setenv("QUILL_API_URL", "http://staging.internal:9000/api/v1")

	content := "api_url: https://api.quillforge.io/api/v1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://staging.internal:9000/api/v1", cfg.APIURL)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUILL_HOME", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [broken"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IO-002")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("QUILL_HOME", t.TempDir())

	in := Config{
		APIURL:    "https://api.quillforge.io/api/v1",
		Timeout:   15 * time.Second,
		LogLevel:  "info",
		LogFormat: "json",
	}
	require.NoError(t, Save(in))

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
