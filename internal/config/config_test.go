package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askrepo/askrepo/internal/search"
)

// Test Plan for configuration:
// - Defaults validate and carry the documented values
// - Validation rejects bad top_k, confidence names, band ordering
// - Loading without a config file yields defaults
// - A partial config file overrides only what it mentions
// - Malformed yaml is a real error
// - Policy-type converters carry the configured values

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, "low", cfg.Retrieval.MinConfidence)
	assert.Equal(t, 500, cfg.Chunking.MaxTokens)
	assert.Equal(t, 512, cfg.Discovery.MaxFileSizeKB)
	assert.True(t, cfg.Cache.Enabled)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"zero top_k", func(c *Config) { c.Retrieval.TopK = 0 }, "top_k"},
		{"bad confidence", func(c *Config) { c.Retrieval.MinConfidence = "maybe" }, "min_confidence"},
		{"inverted bands", func(c *Config) { c.Retrieval.HighBand = 0.1; c.Retrieval.LowBand = 0.5 }, "ordered"},
		{"zero max_tokens", func(c *Config) { c.Chunking.MaxTokens = 0 }, "max_tokens"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errSub)
		})
	}
}

func TestLoader_NoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoader_PartialOverride(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, ".askrepo")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	yml := "retrieval:\n  top_k: 10\nchunking:\n  max_tokens: 250\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o644))

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Retrieval.TopK)
	assert.Equal(t, 250, cfg.Chunking.MaxTokens)
	// Unmentioned keys keep defaults.
	assert.Equal(t, "low", cfg.Retrieval.MinConfidence)
	assert.Equal(t, 2000, cfg.Discovery.MaxFiles)
}

func TestLoader_InvalidValuesRejected(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, ".askrepo")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	yml := "retrieval:\n  min_confidence: sometimes\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o644))

	_, err := NewLoader(root).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoader_MalformedYaml(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, ".askrepo")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("retrieval: [unclosed"), 0o644))

	_, err := NewLoader(root).Load()
	require.Error(t, err)
}

func TestConverters(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Analysis.LinesPerPoint = 20
	cfg.Analysis.MinArchConfidence = 0.4
	cfg.Retrieval.HighBand = 0.7

	assert.Equal(t, 20, cfg.Metrics().LinesPerPoint)
	assert.InDelta(t, 0.4, cfg.Arch().MinConfidence, 1e-9)
	assert.Equal(t, search.Thresholds{High: 0.7, Medium: 0.3, Low: 0.1}, cfg.Thresholds())
}
