package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedEmptyRules(t *testing.T) {
	require.True(t, Allowed(nil))
	require.True(t, Allowed([]Rule{}))
}

func TestAllowedPlainAllow(t *testing.T) {
	require.True(t, Allowed([]Rule{{Action: "allow"}}))
}

func TestAllowedOSMatch(t *testing.T) {
	require.True(t, Allowed([]Rule{
		{Action: "allow", OS: &RuleOS{Name: hostOS()}},
	}))
	require.False(t, Allowed([]Rule{
		{Action: "allow", OS: &RuleOS{Name: "some-other-os"}},
	}))
}

func TestAllowedArchMismatch(t *testing.T) {
	require.False(t, Allowed([]Rule{
		{Action: "allow", OS: &RuleOS{Name: hostOS(), Arch: "not-" + hostArch()}},
	}))
}

func TestDisallowShortCircuits(t *testing.T) {
	// Allow-everything followed by a disallow naming the host.
	require.False(t, Allowed([]Rule{
		{Action: "allow"},
		{Action: "disallow", OS: &RuleOS{Name: hostOS()}},
	}))
}

func TestDisallowOtherOSAndArch(t *testing.T) {
	// A disallow naming both a foreign OS and a foreign arch is skipped.
	require.True(t, Allowed([]Rule{
		{Action: "allow"},
		{Action: "disallow", OS: &RuleOS{Name: "some-other-os", Arch: "not-" + hostArch()}},
	}))
}

func TestDisallowWithoutOSClause(t *testing.T) {
	// A bare disallow is skipped; the earlier allow stands.
	require.True(t, Allowed([]Rule{
		{Action: "allow"},
		{Action: "disallow"},
	}))
}
