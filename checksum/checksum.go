// Package checksum verifies local file content against expected digests.
package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// SHA1 returns the hex-encoded SHA-1 digest of the file at path.
func SHA1(path string) (string, error) {
	return digest(path, sha1.New())
}

// MD5 returns the hex-encoded MD5 digest of the file at path. Used for the
// launcher's own update check, not for game file integrity.
func MD5(path string) (string, error) {
	return digest(path, md5.New())
}

func digest(path string, h hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	_, err = io.Copy(h, f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Matches reports whether the file at path satisfies the expected digest.
// An empty digest means presence alone suffices.
func Matches(path string, want string) bool {
	if want == "" {
		_, err := os.Stat(path)
		return err == nil
	}
	got, err := SHA1(path)
	if err != nil {
		return false
	}
	return strings.EqualFold(got, want)
}
