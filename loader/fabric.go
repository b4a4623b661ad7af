package loader

import (
	"context"
	"fmt"
	"strings"

	"launchmc/errs"
	"launchmc/maven"
	"launchmc/meta"
)

const fabricEndpoint = "https://meta.fabricmc.net/v2/"

// Fabric merges a Fabric loader build into the descriptor using the
// fabricmc meta service.
type Fabric struct {
	// Version is the loader build, e.g. "0.16.10".
	Version string
	// Endpoint overrides the meta service base URL.
	Endpoint string
}

func (f *Fabric) Name() string { return "fabric" }

func (f *Fabric) Merge(ctx context.Context, env *Env, desc *meta.VersionMeta) error {
	endpoint := f.Endpoint
	if endpoint == "" {
		endpoint = fabricEndpoint
	}
	return mergeMetaService(ctx, env, desc, endpoint, "fabric", f.Version)
}

// loaderBuild is one entry of a meta service's loader list.
type loaderBuild struct {
	Separator string `json:"separator"`
	Build     int64  `json:"build"`
	Maven     string `json:"maven"`
	Version   string `json:"version"`
	Stable    bool   `json:"stable,omitempty"`
}

// gameVersion is one entry of a meta service's game version list.
type gameVersion struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// mergeMetaService implements the protocol Fabric and Quilt share: resolve
// the loader build and game version from the service's catalogs, fetch the
// profile document for the pair, and fold it into the descriptor.
func mergeMetaService(ctx context.Context, env *Env, desc *meta.VersionMeta, endpoint, display, version string) error {
	builds, err := meta.Fetch[[]loaderBuild](ctx, env.Client, endpoint+"versions/loader")
	if err != nil {
		return fmt.Errorf("fetch %s loaders: %w", display, err)
	}
	games, err := meta.Fetch[[]gameVersion](ctx, env.Client, endpoint+"versions/game")
	if err != nil {
		return fmt.Errorf("fetch %s game versions: %w", display, err)
	}

	var build *loaderBuild
	for i := range builds {
		if builds[i].Version == version {
			build = &builds[i]
			break
		}
	}
	if build == nil {
		return errs.UnknownVersionf("%s loader %s", display, version)
	}

	var game *gameVersion
	for i := range games {
		if games[i].Version == desc.ID {
			game = &games[i]
			break
		}
	}
	if game == nil {
		return errs.UnknownVersionf("%s game version %s", display, desc.ID)
	}

	profile, err := meta.Fetch[meta.CustomMeta](ctx, env.Client,
		fmt.Sprintf("%sversions/loader/%s/%s/profile/json", endpoint, game.Version, build.Version))
	if err != nil {
		return fmt.Errorf("fetch %s profile: %w", display, err)
	}

	removeConflicting(desc, profile.Libraries)

	for _, lib := range profile.Libraries {
		if lib.URL == "" {
			continue
		}
		p, err := maven.Path(lib.Name)
		if err != nil {
			continue
		}
		desc.Libraries = append(desc.Libraries, meta.Library{
			Name: lib.Name,
			Downloads: &meta.LibraryDownloads{
				Artifact: &meta.File{
					Path: p,
					SHA1: lib.SHA1,
					Size: lib.Size,
					URL:  strings.TrimSuffix(lib.URL, "/") + "/" + p,
				},
			},
		})
	}

	appendArguments(desc, profile.Arguments)
	desc.MainClass = profile.MainClass
	return nil
}

// removeConflicting drops descriptor libraries sharing an artifact name
// with a loader-provided one; loader entries supersede vanilla entries
// regardless of version.
func removeConflicting(desc *meta.VersionMeta, libs []meta.CustomLibrary) {
	names := make(map[string]struct{}, len(libs))
	for _, lib := range libs {
		if name := maven.ArtifactName(lib.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	kept := desc.Libraries[:0]
	for _, lib := range desc.Libraries {
		if _, ok := names[maven.ArtifactName(lib.Name)]; ok {
			continue
		}
		kept = append(kept, lib)
	}
	desc.Libraries = kept
}

// appendArguments extends the descriptor's token lists. Legacy versions
// without split arguments are left alone.
func appendArguments(desc *meta.VersionMeta, args meta.CustomArguments) {
	if desc.Arguments == nil {
		return
	}
	desc.Arguments.JVM = append(desc.Arguments.JVM, args.JVM...)
	desc.Arguments.Game = append(desc.Arguments.Game, args.Game...)
}
