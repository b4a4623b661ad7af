// Package install orchestrates a full client install: resolve and persist
// the version descriptor, reconcile the game directory against it, repair
// what is missing or corrupt, and run any post-install processors.
package install

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"launchmc/checksum"
	"launchmc/config"
	"launchmc/download"
	"launchmc/errs"
	"launchmc/loader"
	"launchmc/meta"
	"launchmc/processor"
	"launchmc/progress"
)

// Endpoints are the remote catalog locations. Zero values mean the official
// services.
type Endpoints struct {
	VersionManifest string
	JavaManifest    string
	Resources       string
}

const (
	defaultVersionManifest = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	defaultJavaManifest    = "https://launchermeta.mojang.com/v1/products/java-runtime/2ec0cc96c44e5a76b9c8b7c39df7210883d12871/all.json"
	defaultResources       = "https://resources.download.minecraft.net/"
)

// Installer installs one profile. Config is required; every other field has
// a usable zero value (official endpoints, loader from the config, scoped
// HTTP client, silent progress).
type Installer struct {
	Config     *config.Config
	Client     *http.Client
	Sink       progress.Sink
	Loader     loader.Loader
	Downloader *download.Downloader
	Endpoints  Endpoints
}

func (i *Installer) downloader() *download.Downloader {
	if i.Downloader != nil {
		return i.Downloader
	}
	return &download.Downloader{Client: i.Client, Sink: i.Sink}
}

func (i *Installer) endpoints() Endpoints {
	e := i.Endpoints
	if e.VersionManifest == "" {
		e.VersionManifest = defaultVersionManifest
	}
	if e.JavaManifest == "" {
		e.JavaManifest = defaultJavaManifest
	}
	if e.Resources == "" {
		e.Resources = defaultResources
	}
	return e
}

// Install brings the game directory to a launchable state and returns the
// resolved descriptor. It is idempotent: a directory already matching the
// descriptor downloads nothing.
func (i *Installer) Install(ctx context.Context) (*meta.VersionMeta, error) {
	cfg := i.Config
	dl := i.downloader()

	desc, err := i.resolveDescriptor(ctx)
	if err != nil {
		return nil, err
	}

	index, err := i.ensureAssetIndex(ctx, desc)
	if err != nil {
		return nil, err
	}

	javaTasks, executables, err := i.javaTasks(ctx, desc)
	if err != nil {
		return nil, err
	}

	candidates, natives := i.buildFileMap(desc, index)
	tasks, err := reconcile(ctx, candidates)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, javaTasks...)

	log.Debug("reconciled game directory", "version", cfg.Name(), "broken", len(tasks))
	if len(tasks) > 0 {
		if err := dl.All(ctx, tasks); err != nil {
			return nil, err
		}
	}

	if runtime.GOOS != "windows" {
		for _, path := range executables {
			if err := os.Chmod(path, 0o755); err != nil {
				return nil, fmt.Errorf("chmod %s: %w", path, err)
			}
		}
	}

	if err := i.extractNatives(natives); err != nil {
		return nil, err
	}
	i.mirrorLegacyAssets(index)

	if err := processor.Run(ctx, desc, cfg); err != nil {
		return nil, err
	}
	return desc, nil
}

// resolveDescriptor loads the persisted descriptor, or builds it from the
// version manifest plus the loader merge and persists it.
func (i *Installer) resolveDescriptor(ctx context.Context) (*meta.VersionMeta, error) {
	cfg := i.Config
	path := cfg.VersionJSONPath()
	if _, err := os.Stat(path); err == nil {
		desc, err := meta.ReadJSON[meta.VersionMeta](path)
		if err != nil {
			return nil, fmt.Errorf("read cached descriptor: %w", err)
		}
		return &desc, nil
	}

	manifest, err := meta.Fetch[meta.VersionManifest](ctx, i.Client, i.endpoints().VersionManifest)
	if err != nil {
		return nil, fmt.Errorf("fetch version manifest: %w", err)
	}
	var entry *meta.ManifestVersion
	for idx := range manifest.Versions {
		if manifest.Versions[idx].ID == cfg.Version {
			entry = &manifest.Versions[idx]
			break
		}
	}
	if entry == nil {
		return nil, errs.UnknownVersionf("game version %s", cfg.Version)
	}

	desc, err := meta.Fetch[meta.VersionMeta](ctx, i.Client, entry.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch version metadata: %w", err)
	}

	ld := i.Loader
	if ld == nil {
		ld, err = loader.FromConfig(cfg)
		if err != nil {
			return nil, err
		}
	}
	env := &loader.Env{Config: cfg, Client: i.Client, Sink: i.Sink, Downloader: i.downloader()}
	if err := ld.Merge(ctx, env, &desc); err != nil {
		return nil, err
	}

	if err := meta.WriteJSON(path, &desc); err != nil {
		return nil, fmt.Errorf("persist descriptor: %w", err)
	}
	return &desc, nil
}

// ensureAssetIndex caches the version's asset index document and returns
// it parsed.
func (i *Installer) ensureAssetIndex(ctx context.Context, desc *meta.VersionMeta) (*meta.AssetIndex, error) {
	path := filepath.Join(i.Config.IndexesPath(), desc.AssetIndex.ID+".json")
	if !checksum.Matches(path, desc.AssetIndex.SHA1) {
		if _, err := i.downloader().Download(ctx, desc.AssetIndex.URL, path); err != nil {
			return nil, fmt.Errorf("fetch asset index %s: %w", desc.AssetIndex.ID, err)
		}
	}
	index, err := meta.ReadJSON[meta.AssetIndex](path)
	if err != nil {
		return nil, fmt.Errorf("read asset index: %w", err)
	}
	return &index, nil
}

// javaTasks reconciles the required Java runtime against its file manifest
// and returns the downloads to perform plus the paths to mark executable
// afterwards. Directories and links are created immediately.
func (i *Installer) javaTasks(ctx context.Context, desc *meta.VersionMeta) ([]download.Task, []string, error) {
	jv := desc.JavaVersion
	if jv == nil {
		jv = meta.DefaultJavaVersion()
	}

	manifest, err := meta.Fetch[meta.JavaManifest](ctx, i.Client, i.endpoints().JavaManifest)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch java manifest: %w", err)
	}
	key, err := javaPlatformKey(jv.MajorVersion)
	if err != nil {
		return nil, nil, err
	}
	runtimes := manifest[key][jv.Component]
	if len(runtimes) == 0 {
		return nil, nil, errs.UnknownVersionf("java runtime %s for platform %s", jv.Component, key)
	}

	files, err := meta.Fetch[meta.JavaFiles](ctx, i.Client, runtimes[0].Manifest.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch java files: %w", err)
	}

	root := filepath.Join(i.Config.RuntimePath(), jv.Component)
	var tasks []download.Task
	var executables []string
	for name, f := range files.Files {
		dest := filepath.Join(root, filepath.FromSlash(name))
		switch f.Type {
		case "directory":
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return nil, nil, fmt.Errorf("mkdir %s: %w", dest, err)
			}
		case "link":
			if f.Target == "" {
				continue
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return nil, nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(dest), err)
			}
			if err := os.Symlink(f.Target, dest); err != nil && !os.IsExist(err) {
				log.Warn("java runtime link", "path", dest, "error", err)
			}
		case "file":
			if f.Downloads == nil {
				continue
			}
			if f.Executable {
				executables = append(executables, dest)
			}
			if !checksum.Matches(dest, f.Downloads.Raw.SHA1) {
				tasks = append(tasks, download.Task{
					URL:      f.Downloads.Raw.URL,
					Dest:     dest,
					Category: "Java",
				})
			}
		}
	}
	return tasks, executables, nil
}

// javaPlatformKey maps the host to the Java runtime manifest's platform
// naming. Intel macOS and mainstream Linux use the bare OS key; Java 8 has
// no arm64 macOS build, so legacy versions fall back to the x64 runtime
// under Rosetta.
func javaPlatformKey(major int) (string, error) {
	var osName string
	switch runtime.GOOS {
	case "windows":
		osName = "windows"
	case "linux":
		osName = "linux"
	case "darwin":
		osName = "mac-os"
	default:
		return "", errs.UnsupportedArchitecture(runtime.GOOS, runtime.GOARCH)
	}

	var arch string
	switch runtime.GOARCH {
	case "amd64":
		arch = "x64"
	case "arm64":
		arch = "arm64"
	case "386":
		if osName == "windows" {
			arch = "x86"
		} else {
			arch = "i386"
		}
	default:
		return "", errs.UnsupportedArchitecture(runtime.GOOS, runtime.GOARCH)
	}

	if (osName == "linux" && arch != "i386") ||
		(osName == "mac-os" && (arch != "arm64" || major == 8)) {
		return osName, nil
	}
	return osName + "-" + arch, nil
}
