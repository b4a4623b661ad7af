package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"launchmc/archive"
	"launchmc/checksum"
	"launchmc/download"
	"launchmc/meta"
)

// candidate is one file the game directory must contain: its expected
// digest, source URL and absolute destination.
type candidate struct {
	url      string
	sha1     string
	dest     string
	category string
}

// buildFileMap enumerates everything the descriptor requires on disk: the
// client jar, every rule-allowed library (with the host's native classifier
// substituted where one exists) and every asset object. It also returns the
// jars whose contents must be unpacked into the natives directory.
func (i *Installer) buildFileMap(desc *meta.VersionMeta, index *meta.AssetIndex) ([]candidate, []string) {
	cfg := i.Config
	candidates := []candidate{{
		url:      desc.Downloads.Client.URL,
		sha1:     desc.Downloads.Client.SHA1,
		dest:     cfg.VersionJarPath(),
		category: "Client",
	}}
	var natives []string

	nativeKey := meta.NativeClassifierKey()
	for _, lib := range desc.Libraries {
		if !meta.Allowed(lib.Rules) || lib.Downloads == nil {
			continue
		}

		artifact := lib.Downloads.Artifact
		// A host native classifier replaces the default artifact and is
		// queued for extraction.
		isNative := false
		if nativeKey != "" {
			if classifier, ok := lib.Downloads.Classifiers[nativeKey]; ok {
				artifact = &classifier
				isNative = true
			}
		}
		if artifact == nil || artifact.Path == "" {
			continue
		}

		dest := filepath.Join(cfg.LibrariesPath(), filepath.FromSlash(artifact.Path))
		candidates = append(candidates, candidate{
			url:      artifact.URL,
			sha1:     artifact.SHA1,
			dest:     dest,
			category: "Library",
		})
		if isNative {
			natives = append(natives, dest)
		}
	}

	resources := i.endpoints().Resources
	for _, obj := range index.Objects {
		sub := obj.Hash[:2]
		candidates = append(candidates, candidate{
			url:      resources + sub + "/" + obj.Hash,
			sha1:     obj.Hash,
			dest:     filepath.Join(cfg.AssetsPath(), "objects", sub, obj.Hash),
			category: "Asset",
		})
	}

	return candidates, natives
}

// reconcile verifies every candidate against its digest in parallel and
// returns download tasks for the missing or corrupt ones.
func reconcile(ctx context.Context, candidates []candidate) ([]download.Task, error) {
	var mu sync.Mutex
	var broken []download.Task

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, c := range candidates {
		c := c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if c.url == "" || checksum.Matches(c.dest, c.sha1) {
				return nil
			}
			mu.Lock()
			broken = append(broken, download.Task{URL: c.url, Dest: c.dest, Category: c.category})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return broken, nil
}

// extractNatives unpacks every native jar into this profile's natives
// directory. A non-empty directory is from a previous run and is left
// alone; a missing or emptied one is rebuilt from the cached jars.
func (i *Installer) extractNatives(jars []string) error {
	if len(jars) == 0 {
		return nil
	}
	dir := filepath.Join(i.Config.NativesPath(), i.Config.Name())
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return nil
	}
	for _, jar := range jars {
		if err := archive.ExtractAll(jar, dir); err != nil {
			return fmt.Errorf("extract natives %s: %w", jar, err)
		}
	}
	return nil
}

// mirrorLegacyAssets copies asset objects into the flat layout pre-1.7
// versions read: resources/ under the game directory when the index maps to
// resources, assets/virtual/legacy otherwise. Failures are logged and
// skipped; the store copy stays authoritative.
func (i *Installer) mirrorLegacyAssets(index *meta.AssetIndex) {
	var base string
	switch {
	case index.MapToResources:
		base = filepath.Join(i.Config.GameDir, "resources")
	case index.Virtual:
		base = filepath.Join(i.Config.AssetsPath(), "virtual", "legacy")
	default:
		return
	}

	for name, obj := range index.Objects {
		src := filepath.Join(i.Config.AssetsPath(), "objects", obj.Hash[:2], obj.Hash)
		dst := filepath.Join(base, filepath.FromSlash(name))
		if checksum.Matches(dst, obj.Hash) {
			continue
		}
		if err := copyFile(src, dst); err != nil {
			log.Warn("legacy asset mirror", "asset", name, "error", err)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	err = os.MkdirAll(filepath.Dir(dst), os.ModePerm)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(dst), err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	if err != nil {
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return nil
}
