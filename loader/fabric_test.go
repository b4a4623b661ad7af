package loader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"launchmc/config"
	"launchmc/errs"
	"launchmc/meta"
)

func fabricMetaServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/versions/loader", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]loaderBuild{
			{Version: "0.16.10", Build: 10, Stable: true},
			{Version: "0.16.9", Build: 9},
		})
	})
	mux.HandleFunc("/versions/game", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]gameVersion{
			{Version: "1.21.4", Stable: true},
			{Version: "1.21.3", Stable: true},
		})
	})
	mux.HandleFunc("/versions/loader/1.21.4/0.16.10/profile/json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(meta.CustomMeta{
			MainClass: "net.fabricmc.loader.impl.launch.knot.KnotClient",
			Arguments: meta.CustomArguments{
				JVM: []json.RawMessage{json.RawMessage(`"-DFabricMcEmu= net.minecraft.client.main.Main "`)},
			},
			Libraries: []meta.CustomLibrary{
				{
					Name: "net.fabricmc:fabric-loader:0.16.10",
					URL:  "https://maven.fabricmc.net/",
					SHA1: "feedface",
					Size: 1234,
				},
				{Name: "no.base.url:ignored:1.0"},
			},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFabricMerge(t *testing.T) {
	server := fabricMetaServer(t)

	desc := &meta.VersionMeta{
		ID:        "1.21.4",
		MainClass: "net.minecraft.client.main.Main",
		Arguments: &meta.Arguments{
			Game: []json.RawMessage{json.RawMessage(`"--version"`)},
		},
		Libraries: []meta.Library{
			{Name: "org.ow2.asm:asm:9.6"},
			{Name: "net.fabricmc:fabric-loader:0.15.0"},
		},
	}

	f := &Fabric{Version: "0.16.10", Endpoint: server.URL + "/"}
	env := &Env{Config: &config.Config{GameDir: t.TempDir()}}
	require.NoError(t, f.Merge(context.Background(), env, desc))

	require.Equal(t, "net.fabricmc.loader.impl.launch.knot.KnotClient", desc.MainClass)

	// The stale fabric-loader is superseded; the vanilla library survives.
	names := make([]string, 0, len(desc.Libraries))
	for _, lib := range desc.Libraries {
		names = append(names, lib.Name)
	}
	require.Equal(t, []string{"org.ow2.asm:asm:9.6", "net.fabricmc:fabric-loader:0.16.10"}, names)

	added := desc.Libraries[1]
	require.NotNil(t, added.Downloads)
	require.NotNil(t, added.Downloads.Artifact)
	require.Equal(t, "net/fabricmc/fabric-loader/0.16.10/fabric-loader-0.16.10.jar", added.Downloads.Artifact.Path)
	require.Equal(t, "https://maven.fabricmc.net/net/fabricmc/fabric-loader/0.16.10/fabric-loader-0.16.10.jar", added.Downloads.Artifact.URL)
	require.Equal(t, "feedface", added.Downloads.Artifact.SHA1)

	require.Len(t, desc.Arguments.Game, 1)
	require.Len(t, desc.Arguments.JVM, 1)
}

func TestFabricMergeLegacyArguments(t *testing.T) {
	server := fabricMetaServer(t)

	// Legacy descriptors carry a single token string instead of split
	// argument lists; the merge must not invent the lists.
	desc := &meta.VersionMeta{ID: "1.21.4"}
	f := &Fabric{Version: "0.16.10", Endpoint: server.URL + "/"}
	require.NoError(t, f.Merge(context.Background(), &Env{}, desc))
	require.Nil(t, desc.Arguments)
}

func TestFabricUnknownLoaderVersion(t *testing.T) {
	server := fabricMetaServer(t)

	f := &Fabric{Version: "9.9.9", Endpoint: server.URL + "/"}
	err := f.Merge(context.Background(), &Env{}, &meta.VersionMeta{ID: "1.21.4"})
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindUnknownVersion))
}

func TestFabricUnknownGameVersion(t *testing.T) {
	server := fabricMetaServer(t)

	f := &Fabric{Version: "0.16.10", Endpoint: server.URL + "/"}
	err := f.Merge(context.Background(), &Env{}, &meta.VersionMeta{ID: "0.0.0"})
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindUnknownVersion))
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		kind string
		name string
	}{
		{"", "none"},
		{"none", "none"},
		{"fabric", "fabric"},
		{"quilt", "quilt"},
		{"forge", "forge"},
		{"neoforge", "neoforge"},
	}
	for _, tt := range tests {
		l, err := FromConfig(&config.Config{Loader: config.Loader{Kind: tt.kind, Version: "1"}})
		require.NoError(t, err)
		require.Equal(t, tt.name, l.Name())
	}

	_, err := FromConfig(&config.Config{Loader: config.Loader{Kind: "rift"}})
	require.Error(t, err)
}
