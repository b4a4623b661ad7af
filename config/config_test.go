package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchmc.yml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "game", cfg.GameDir)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchmc.yml")
	cfg := &Config{
		GameDir: "game",
		Version: "1.21.4",
		Loader:  Loader{Kind: "fabric", Version: "0.16.10"},
	}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestName(t *testing.T) {
	cfg := &Config{Version: "1.21.4"}
	require.Equal(t, "1.21.4", cfg.Name())

	cfg.Loader = Loader{Kind: "neoforge", Version: "21.4.66-beta"}
	require.Equal(t, "1.21.4-21.4.66-beta", cfg.Name())

	cfg.VersionName = "my-pack"
	require.Equal(t, "my-pack", cfg.Name())
}

func TestPaths(t *testing.T) {
	cfg := &Config{GameDir: "game", Version: "1.21.4"}
	require.Equal(t, filepath.Join("game", "libraries"), cfg.LibrariesPath())
	require.Equal(t, filepath.Join("game", "assets", "indexes"), cfg.IndexesPath())
	require.Equal(t, filepath.Join("game", "versions", "1.21.4", "1.21.4.json"), cfg.VersionJSONPath())
	require.Equal(t, filepath.Join("game", "versions", "1.21.4", "1.21.4.jar"), cfg.VersionJarPath())
	require.Equal(t, filepath.Join("game", "runtimes"), cfg.RuntimePath())

	cfg.RuntimeDir = "elsewhere"
	require.Equal(t, "elsewhere", cfg.RuntimePath())
}
