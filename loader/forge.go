package loader

import (
	"context"
	"fmt"

	"launchmc/meta"
)

const forgeInstallerEndpoint = "https://maven.minecraftforge.net/net/minecraftforge/forge/%[1]s/forge-%[1]s-installer.jar"

// Forge merges a Forge build through the same installer-package protocol as
// NeoForge. Version follows the Forge convention of "<game>-<build>",
// e.g. "1.20.1-47.2.0".
type Forge struct {
	Version string
	// InstallerURL overrides the formatted release endpoint.
	InstallerURL string
}

func (f *Forge) Name() string { return "forge" }

func (f *Forge) Merge(ctx context.Context, env *Env, desc *meta.VersionMeta) error {
	url := f.InstallerURL
	if url == "" {
		url = fmt.Sprintf(forgeInstallerEndpoint, f.Version)
	}
	return mergeInstaller(ctx, env, desc, "forge", url)
}
