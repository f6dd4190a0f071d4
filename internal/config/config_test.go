package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/kochbuch/internal/logger"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)
	require.Equal(t, language.German, cfg.Language())
	require.Equal(t, logger.LevelNormal, cfg.LogLevel())
}

func TestLoadFromXDGDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, AppName), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AppName, "kochbuch.yaml"), []byte(
		"catalog: rezepte.yaml\nlocale: en\nlog:\n  level: verbose\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, "rezepte.yaml", cfg.Catalog)
	require.Equal(t, language.English, cfg.Language())
	require.Equal(t, logger.LevelVerbose, cfg.LogLevel())
	require.Equal(t, Default().Log.File, cfg.Log.File)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: en\n"), 0o644))
	t.Setenv("KOCHBUCH_LOCALE", "sv")
	t.Setenv("KOCHBUCH_LOG_LEVEL", "off")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "sv", cfg.Locale)
	require.Equal(t, logger.LevelOff, cfg.LogLevel())
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(viper.New(), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	t.Setenv("KOCHBUCH_LOG_LEVEL", "loud")
	_, err = Load(viper.New(), "")
	require.ErrorContains(t, err, "invalid log level")

	t.Setenv("KOCHBUCH_LOG_LEVEL", "normal")
	t.Setenv("KOCHBUCH_LOCALE", "not a locale!")
	_, err = Load(viper.New(), "")
	require.ErrorContains(t, err, "invalid locale")
}
