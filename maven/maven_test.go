package maven

import (
	"testing"

	"github.com/stretchr/testify/require"

	"launchmc/errs"
)

func TestPath(t *testing.T) {
	tests := []struct {
		coordinate string
		want       string
	}{
		{"com.example:lib:1.0", "com/example/lib/1.0/lib-1.0.jar"},
		{"com.example:lib:1.0:natives", "com/example/lib/1.0/lib-1.0-natives.jar"},
		{"com.example:lib:1.0@zip", "com/example/lib/1.0/lib-1.0.zip"},
		{"com.example:lib:1.0:natives@so", "com/example/lib/1.0/lib-1.0-natives.so"},
		{"org.lwjgl:lwjgl:3.3.3", "org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3.jar"},
		{"net.fabricmc:fabric-loader:0.16.10", "net/fabricmc/fabric-loader/0.16.10/fabric-loader-0.16.10.jar"},
	}
	for _, tt := range tests {
		got, err := Path(tt.coordinate)
		require.NoError(t, err, tt.coordinate)
		require.Equal(t, tt.want, got, tt.coordinate)
	}
}

func TestPathInvalid(t *testing.T) {
	for _, coordinate := range []string{"", "lib", "com.example:lib"} {
		_, err := Path(coordinate)
		require.Error(t, err, coordinate)
		require.True(t, errs.IsKind(err, errs.KindParse), coordinate)
	}
}

func TestArtifactName(t *testing.T) {
	require.Equal(t, "lib", ArtifactName("com.example:lib:1.0"))
	require.Equal(t, "lib", ArtifactName("com.example:lib:2.0:natives"))
	require.Equal(t, "", ArtifactName("junk"))
}
