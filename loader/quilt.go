package loader

import (
	"context"

	"launchmc/meta"
)

const quiltEndpoint = "https://meta.quiltmc.org/v3/"

// Quilt merges a Quilt loader build into the descriptor. The quiltmc meta
// service speaks the same protocol as Fabric's, on different endpoints.
type Quilt struct {
	// Version is the loader build.
	Version string
	// Endpoint overrides the meta service base URL.
	Endpoint string
}

func (q *Quilt) Name() string { return "quilt" }

func (q *Quilt) Merge(ctx context.Context, env *Env, desc *meta.VersionMeta) error {
	endpoint := q.Endpoint
	if endpoint == "" {
		endpoint = quiltEndpoint
	}
	return mergeMetaService(ctx, env, desc, endpoint, "quilt", q.Version)
}
