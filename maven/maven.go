// Package maven resolves Maven-style artifact coordinates to repository
// paths. A coordinate has the form group:artifact:version[:classifier][@ext]
// and the extension defaults to jar.
package maven

import (
	"fmt"
	"strings"

	"launchmc/errs"
)

// Path converts a coordinate string into a slash-separated relative path:
//
//	com.example:lib:1.0          -> com/example/lib/1.0/lib-1.0.jar
//	com.example:lib:1.0:natives  -> com/example/lib/1.0/lib-1.0-natives.jar
//	com.example:lib:1.0@zip      -> com/example/lib/1.0/lib-1.0.zip
func Path(coordinate string) (string, error) {
	items := strings.Split(coordinate, ":")
	if len(items) < 3 {
		return "", errs.Parsef("invalid artifact format: %s", coordinate)
	}

	group := strings.ReplaceAll(items[0], ".", "/")
	name := items[1]
	version, ext := splitExt(items[2])

	if len(items) == 3 {
		return fmt.Sprintf("%s/%s/%s/%s-%s.%s", group, name, version, name, version, ext), nil
	}

	classifier, ext := splitExt(items[3])
	return fmt.Sprintf("%s/%s/%s/%s-%s-%s.%s", group, name, version, name, version, classifier, ext), nil
}

// ArtifactName returns the artifact-name segment of a coordinate, the
// identity used for library deduplication. Returns "" when the coordinate
// has no second segment.
func ArtifactName(coordinate string) string {
	items := strings.Split(coordinate, ":")
	if len(items) < 2 {
		return ""
	}
	return items[1]
}

func splitExt(segment string) (string, string) {
	value, ext, ok := strings.Cut(segment, "@")
	if !ok || ext == "" {
		return value, "jar"
	}
	return value, ext
}
