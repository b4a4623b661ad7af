// Package loader merges mod-loader metadata into a resolved version
// descriptor. Each variant owns its endpoint constants and protocol; the
// variant is selected at configuration time.
package loader

import (
	"context"
	"fmt"
	"net/http"

	"launchmc/config"
	"launchmc/download"
	"launchmc/meta"
	"launchmc/progress"
)

// Env bundles what a merge needs: the install profile, the shared HTTP
// client (nil means a scoped client per call), the progress sink and the
// download engine for installer packages.
type Env struct {
	Config     *config.Config
	Client     *http.Client
	Sink       progress.Sink
	Downloader *download.Downloader
}

func (e *Env) downloader() *download.Downloader {
	if e.Downloader != nil {
		return e.Downloader
	}
	return &download.Downloader{Client: e.Client, Sink: e.Sink}
}

// Loader folds loader-specific metadata into a version descriptor.
// Merge mutates desc in place; network and parse errors propagate, and the
// only writes a variant performs outside desc are to its own cache files.
type Loader interface {
	Name() string
	Merge(ctx context.Context, env *Env, desc *meta.VersionMeta) error
}

// None is the identity loader: the vanilla descriptor is left unchanged.
type None struct{}

func (None) Name() string { return "none" }

func (None) Merge(context.Context, *Env, *meta.VersionMeta) error {
	return nil
}

// FromConfig maps a configured loader kind to its variant.
func FromConfig(cfg *config.Config) (Loader, error) {
	switch cfg.Loader.Kind {
	case "", "none":
		return None{}, nil
	case "fabric":
		return &Fabric{Version: cfg.Loader.Version}, nil
	case "quilt":
		return &Quilt{Version: cfg.Loader.Version}, nil
	case "forge":
		return &Forge{Version: cfg.Loader.Version}, nil
	case "neoforge":
		return &NeoForge{Version: cfg.Loader.Version}, nil
	}
	return nil, fmt.Errorf("unknown loader kind %q", cfg.Loader.Kind)
}
