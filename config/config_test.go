package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "outputs/img-samples", cfg.Search.OutDir)
	assert.Equal(t, ".", cfg.Search.Root)
	assert.Equal(t, MalformedSkip, cfg.Search.Malformed)
	assert.Equal(t, "warning", cfg.Logging.Level)
	assert.False(t, cfg.Strict())
	assert.Equal(t, Default(), cfg)
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
search:
  outdir: out/samples
  root: /srv/dream
  malformed: fail
  highlight: true
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "out/samples", cfg.Search.OutDir)
	assert.Equal(t, "/srv/dream", cfg.Search.Root)
	assert.True(t, cfg.Strict())
	assert.True(t, cfg.Search.Highlight)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("search:\n  malformed: ignore\n"))
	assert.ErrorContains(t, err, "search.malformed")

	_, err = Parse([]byte("logging:\n  level: loud\n"))
	assert.ErrorContains(t, err, "logging.level")

	_, err = Parse([]byte("search: [not, a, map]\n"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  outdir: elsewhere\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.Search.OutDir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadDefaultFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("search:\n  highlight: true\n"), 0o644))
	cfg, path, err = LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, FileName, path)
	assert.True(t, cfg.Search.Highlight)
}
