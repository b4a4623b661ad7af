package loader

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"launchmc/archive"
	"launchmc/config"
	"launchmc/maven"
	"launchmc/meta"
)

// mergeInstaller implements the Forge-family protocol: fetch the installer
// package once, cache its install_profile.json and version.json next to it
// under the profile directory, materialize slash-prefixed data variables
// into the library tree, and fold processors, data and libraries into the
// descriptor. family is "forge" or "neoforge"; installerURL is the fully
// formatted package URL.
func mergeInstaller(ctx context.Context, env *Env, desc *meta.VersionMeta, family, installerURL string) error {
	cfg := env.Config
	name := cfg.Name()
	profileDir := filepath.Join(cfg.GameDir, "."+family, "profiles", name)
	installerPath := filepath.Join(profileDir, fmt.Sprintf("installer-%s.jar", name))
	installerJSON := filepath.Join(profileDir, fmt.Sprintf("installer-%s.json", name))
	versionJSON := filepath.Join(profileDir, fmt.Sprintf("version-%s.json", name))

	if _, err := os.Stat(installerPath); err != nil {
		if _, err := env.downloader().Download(ctx, installerURL, installerPath); err != nil {
			return fmt.Errorf("fetch %s installer: %w", family, err)
		}
	}
	if _, err := os.Stat(installerJSON); err != nil {
		if err := archive.ExtractFile(installerPath, "install_profile.json", installerJSON); err != nil {
			return fmt.Errorf("extract install_profile.json: %w", err)
		}
	}
	if _, err := os.Stat(versionJSON); err != nil {
		if err := archive.ExtractFile(installerPath, "version.json", versionJSON); err != nil {
			return fmt.Errorf("extract version.json: %w", err)
		}
	}

	installer, err := meta.ReadJSON[meta.Installer](installerJSON)
	if err != nil {
		return fmt.Errorf("read install profile: %w", err)
	}
	profile, err := meta.ReadJSON[meta.CustomMeta](versionJSON)
	if err != nil {
		return fmt.Errorf("read installer version: %w", err)
	}

	if err := materializeDataFiles(cfg, installerPath, family, desc.ID, installer.Data); err != nil {
		return err
	}
	desc.Data = overlayData(cfg, desc, installer.Data, name)
	desc.Processors = installer.Processors

	// Best effort; anything missing here is fetched per-library later.
	if err := archive.ExtractDir(installerPath, "maven/", cfg.LibrariesPath()); err != nil {
		log.Warn("bundled maven extract", "installer", installerPath, "error", err)
	}

	removeConflicting(desc, profile.Libraries)
	seen := make(map[string]struct{})
	desc.Libraries = appendInstallerLibraries(desc.Libraries, profile.Libraries, seen, false)
	desc.Libraries = appendInstallerLibraries(desc.Libraries, installer.Libraries, seen, true)

	appendArguments(desc, profile.Arguments)
	desc.MainClass = profile.MainClass
	return nil
}

// materializeDataFiles extracts every data variable whose client value
// names a file inside the installer package (a slash-prefixed entry path)
// into the library tree under a synthetic coordinate, and rewrites the
// value to that coordinate so processors resolve it like any other
// artifact.
func materializeDataFiles(cfg *config.Config, installerPath, family, gameVersion string, data map[string]meta.DataEntry) error {
	for key, entry := range data {
		if !strings.HasPrefix(entry.Client, "/") {
			continue
		}
		entryPath := strings.TrimPrefix(entry.Client, "/")
		base := path.Base(entryPath)
		stem := base
		ext := "jar"
		if i := strings.LastIndex(base, "."); i > 0 {
			stem, ext = base[:i], base[i+1:]
		}
		coordinate := fmt.Sprintf("launchmc:%s-installer-extracts:%s:%s@%s", family, gameVersion, stem, ext)
		rel, err := maven.Path(coordinate)
		if err != nil {
			return fmt.Errorf("data variable %s: %w", key, err)
		}
		dest := filepath.Join(cfg.LibrariesPath(), filepath.FromSlash(rel))
		if err := archive.ExtractFile(installerPath, entryPath, dest); err != nil {
			return fmt.Errorf("extract data variable %s: %w", key, err)
		}
		entry.Client = "[" + coordinate + "]"
		data[key] = entry
	}
	return nil
}

// overlayData builds the descriptor's substitution table: the standard
// variables every processor run needs, overlaid by the installer-declared
// ones.
func overlayData(cfg *config.Config, desc *meta.VersionMeta, installerData map[string]meta.DataEntry, name string) map[string]meta.DataEntry {
	data := map[string]meta.DataEntry{
		"SIDE":              {Client: "client"},
		"MINECRAFT_VERSION": {Client: desc.ID},
		"ROOT":              {Client: cfg.GameDir},
		"LIBRARY_DIR":       {Client: cfg.LibrariesPath()},
		"MINECRAFT_JAR":     {Client: filepath.Join(cfg.VersionsPath(), name, name+".jar")},
	}
	for key, entry := range installerData {
		data[key] = entry
	}
	return data
}

// appendInstallerLibraries folds loader libraries into the descriptor,
// deduplicating on the full coordinate across both documents. skipArgs
// marks processor-only libraries that must not contribute launch
// arguments.
func appendInstallerLibraries(dst []meta.Library, libs []meta.CustomLibrary, seen map[string]struct{}, skipArgs bool) []meta.Library {
	for _, lib := range libs {
		if _, ok := seen[lib.Name]; ok {
			continue
		}
		seen[lib.Name] = struct{}{}

		var artifact *meta.File
		switch {
		case lib.Downloads != nil && lib.Downloads.Artifact != nil && lib.Downloads.Artifact.Path != "":
			a := *lib.Downloads.Artifact
			artifact = &a
		case lib.URL != "":
			rel, err := maven.Path(lib.Name)
			if err != nil {
				continue
			}
			artifact = &meta.File{
				Path: rel,
				SHA1: lib.SHA1,
				Size: lib.Size,
				URL:  strings.TrimSuffix(lib.URL, "/") + "/" + rel,
			}
		default:
			continue
		}

		dst = append(dst, meta.Library{
			Name:      lib.Name,
			Downloads: &meta.LibraryDownloads{Artifact: artifact},
			SkipArgs:  skipArgs,
		})
	}
	return dst
}
