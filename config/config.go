// Package config holds the launcher configuration and the layout of the
// game directory: where versions, libraries, assets, natives and Java
// runtimes live.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"launchmc/meta"
)

// Loader selects an optional mod-loader overlay.
type Loader struct {
	// Kind is one of "", "none", "fabric", "quilt", "forge", "neoforge".
	Kind string `yaml:"kind,omitempty"`
	// Version is the loader build, e.g. "0.16.10" for Fabric.
	Version string `yaml:"version,omitempty"`
}

// Config represents one install profile.
type Config struct {
	// GameDir is the root directory everything installs under.
	GameDir string `yaml:"game_dir"`
	// Version is the game version id, e.g. "1.21.4".
	Version string `yaml:"version"`
	// VersionName overrides the profile name used for the versions/
	// subdirectory. Defaults to "<version>-<loader version>" when a
	// loader is configured, else to the version id.
	VersionName string `yaml:"version_name,omitempty"`
	// Loader is the optional mod-loader overlay.
	Loader Loader `yaml:"loader,omitempty"`
	// RuntimeDir overrides where Java runtimes are kept.
	RuntimeDir string `yaml:"runtime_dir,omitempty"`
	// JavaArgs are extra JVM arguments for the launch collaborator.
	JavaArgs []string `yaml:"java_args,omitempty"`
	// GameArgs are extra game arguments for the launch collaborator.
	GameArgs []string `yaml:"game_args,omitempty"`
	// UpdateURL is where the launcher checks for its own updates.
	UpdateURL string `yaml:"update_url,omitempty"`
}

// Load reads a config file, creating it with defaults when missing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		cfg := &Config{
			GameDir: "game",
		}
		err = cfg.Save(path)
		if err != nil {
			return nil, fmt.Errorf("save new config: %w", err)
		}
		return cfg, nil
	}

	cfg := &Config{}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config back to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Name returns the profile name used for the versions/ subdirectory.
func (c *Config) Name() string {
	if c.VersionName != "" {
		return c.VersionName
	}
	if c.Loader.Kind != "" && c.Loader.Kind != "none" && c.Loader.Version != "" {
		return fmt.Sprintf("%s-%s", c.Version, c.Loader.Version)
	}
	return c.Version
}

// LibrariesPath is the root of the Maven artifact tree.
func (c *Config) LibrariesPath() string {
	return filepath.Join(c.GameDir, "libraries")
}

// AssetsPath is the root of the content-addressed asset store.
func (c *Config) AssetsPath() string {
	return filepath.Join(c.GameDir, "assets")
}

// IndexesPath holds cached asset index documents.
func (c *Config) IndexesPath() string {
	return filepath.Join(c.AssetsPath(), "indexes")
}

// NativesPath is where native library classifiers are extracted, keyed by
// version below it.
func (c *Config) NativesPath() string {
	return filepath.Join(c.GameDir, "natives")
}

// RuntimePath is where Java runtime components are installed.
func (c *Config) RuntimePath() string {
	if c.RuntimeDir != "" {
		return c.RuntimeDir
	}
	return filepath.Join(c.GameDir, "runtimes")
}

// VersionsPath holds one subdirectory per installed profile.
func (c *Config) VersionsPath() string {
	return filepath.Join(c.GameDir, "versions")
}

// VersionPath is this profile's directory.
func (c *Config) VersionPath() string {
	return filepath.Join(c.VersionsPath(), c.Name())
}

// VersionJSONPath is the persisted resolved descriptor.
func (c *Config) VersionJSONPath() string {
	return filepath.Join(c.VersionPath(), c.Name()+".json")
}

// VersionJarPath is the client jar.
func (c *Config) VersionJarPath() string {
	return filepath.Join(c.VersionPath(), c.Name()+".jar")
}

// JavaPath returns the Java executable for the given runtime requirement,
// marking it executable on platforms that need it.
func (c *Config) JavaPath(v *meta.JavaVersion) (string, error) {
	if v == nil {
		v = meta.DefaultJavaVersion()
	}

	var javaPath string
	switch runtime.GOOS {
	case "windows":
		javaPath = filepath.Join(c.RuntimePath(), v.Component, "bin", "javaw.exe")
	case "darwin":
		javaPath = filepath.Join(c.RuntimePath(), v.Component, "jre.bundle", "Contents", "Home", "bin", "java")
	default:
		javaPath = filepath.Join(c.RuntimePath(), v.Component, "bin", "java")
	}

	if runtime.GOOS != "windows" {
		err := os.Chmod(javaPath, 0o755)
		if err != nil {
			return "", fmt.Errorf("chmod %s: %w", javaPath, err)
		}
	}
	return javaPath, nil
}
