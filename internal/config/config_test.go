package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Project.Root)
	assert.Empty(t, cfg.Project.Extensions)
	assert.Equal(t, "docs/mkdoc.h", cfg.Output.Header)
	assert.Equal(t, "docs/mkdoc_report.json", cfg.Output.Report)
	assert.Equal(t, "HEAD", cfg.Git.BaseRef)

	assert.False(t, cfg.Translator.ReturnIncludesTypeTag)
	assert.True(t, cfg.Translator.TranslateScopeOperator)
	assert.True(t, cfg.Translator.HideTParam)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
project:
  root: ./include
  extensions: [".hpp", ".cuh"]
output:
  header: gen/docstrings.h
translator:
  hide_tparam: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./include", cfg.Project.Root)
	assert.Equal(t, []string{".hpp", ".cuh"}, cfg.Project.Extensions)
	assert.Equal(t, "gen/docstrings.h", cfg.Output.Header)
	assert.False(t, cfg.Translator.HideTParam)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "docs/mkdoc_report.json", cfg.Output.Report)
	assert.True(t, cfg.Translator.TranslateScopeOperator)
	assert.Equal(t, "HEAD", cfg.Git.BaseRef)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
project:
  root: ./include
`)

	t.Setenv("MKDOC_PROJECT_ROOT", "/srv/project")
	t.Setenv("MKDOC_OUTPUT_HEADER", "out/mkdoc.h")
	t.Setenv("MKDOC_GIT_BASE_REF", "main")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/project", cfg.Project.Root)
	assert.Equal(t, "out/mkdoc.h", cfg.Output.Header)
	assert.Equal(t, "main", cfg.Git.BaseRef)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := writeConfig(t, "project: [not: valid")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestTranslatorOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Translator.ReturnIncludesTypeTag = true
	cfg.Translator.TranslateScopeOperator = false

	opts := cfg.TranslatorOptions()
	assert.True(t, opts.ReturnIncludesTypeTag)
	assert.False(t, opts.TranslateScopeOperator)
	assert.True(t, opts.HideTParam)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
