package loader

import (
	"context"
	"fmt"

	"launchmc/meta"
)

const neoforgeInstallerEndpoint = "https://maven.neoforged.net/releases/net/neoforged/neoforge/%[1]s/neoforge-%[1]s-installer.jar"

// NeoForge merges a NeoForge build by downloading its installer package and
// folding the bundled metadata into the descriptor.
type NeoForge struct {
	// Version is the NeoForge build, e.g. "21.4.66".
	Version string
	// InstallerURL overrides the formatted release endpoint.
	InstallerURL string
}

func (n *NeoForge) Name() string { return "neoforge" }

func (n *NeoForge) Merge(ctx context.Context, env *Env, desc *meta.VersionMeta) error {
	url := n.InstallerURL
	if url == "" {
		url = fmt.Sprintf(neoforgeInstallerEndpoint, n.Version)
	}
	return mergeInstaller(ctx, env, desc, "neoforge", url)
}
