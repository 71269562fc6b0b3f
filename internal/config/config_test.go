package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/funcase/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	require.True(t, cfg.ADTEnabled())
	require.True(t, cfg.MatchEnabled())
	require.True(t, cfg.TCOEnabled())
	require.False(t, cfg.WarningsAsErrors)
	require.Equal(t, "auto", cfg.Color)
}

func TestMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), config.ConfigFileName))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesSelectedFields(t *testing.T) {
	path := writeConfig(t, `
passes:
  tco: false
warnings_as_errors: true
color: never
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.False(t, cfg.TCOEnabled())
	require.True(t, cfg.ADTEnabled(), "unset passes stay enabled")
	require.True(t, cfg.MatchEnabled())
	require.True(t, cfg.WarningsAsErrors)
	require.Equal(t, "never", cfg.Color)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	_, err := config.Load(writeConfig(t, "passes: ["))
	require.Error(t, err)
}

func TestLoadRejectsUnknownColorMode(t *testing.T) {
	_, err := config.Load(writeConfig(t, "color: sometimes"))
	require.ErrorContains(t, err, "color must be auto, always or never")
}

func TestMatchWithoutAdtIsRejected(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
passes:
  adt: false
`))
	require.ErrorContains(t, err, "match requires adt")
}

func TestDisablingBothAdtAndMatchIsAllowed(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
passes:
  adt: false
  match: false
`))
	require.NoError(t, err)
	require.False(t, cfg.ADTEnabled())
	require.False(t, cfg.MatchEnabled())
	require.True(t, cfg.TCOEnabled())
}
