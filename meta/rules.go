package meta

import "runtime"

// Host OS names as version metadata spells them.
func hostOS() string {
	if runtime.GOOS == "darwin" {
		return "osx"
	}
	return runtime.GOOS
}

// Host architecture as version metadata spells it.
func hostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "aarch64"
	}
	return runtime.GOARCH
}

// Allowed evaluates a library's install-rule set against the host.
//
// An empty rule set allows. Otherwise rules are scanned in order: a
// disallow rule with an os clause excludes the library (short-circuit)
// unless it names both an OS and an architecture and both mismatch the
// host; an allow rule with a matching (or absent) os clause includes it,
// where a clause with either field mismatching is skipped. An allow rule
// without an os clause includes but keeps scanning so a later disallow can
// still exclude.
//
// TODO: re-derive the combined name+arch disallow precedence from the
// launcher metadata schema; this mirrors observed behavior.
func Allowed(rules []Rule) bool {
	if len(rules) == 0 {
		return true
	}

	os := hostOS()
	arch := hostArch()

	allowed := false
	for _, rule := range rules {
		switch rule.Action {
		case "disallow":
			if rule.OS == nil {
				continue
			}
			if rule.OS.Name != "" && rule.OS.Name != os &&
				rule.OS.Arch != "" && rule.OS.Arch != arch {
				continue
			}
			return false
		case "allow":
			if rule.OS == nil {
				allowed = true
				continue
			}
			if (rule.OS.Name != "" && rule.OS.Name != os) ||
				(rule.OS.Arch != "" && rule.OS.Arch != arch) {
				continue
			}
			return true
		}
	}
	return allowed
}

// NativeClassifierKey returns the classifiers-map key for the host OS, or
// "" when the host has no native classifier convention.
func NativeClassifierKey() string {
	switch runtime.GOOS {
	case "windows":
		return "natives-windows"
	case "linux":
		return "natives-linux"
	case "darwin":
		return "natives-macos"
	}
	return ""
}
