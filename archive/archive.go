// Package archive extracts entries from ZIP-format packages: whole
// archives, single named entries, or whole subtrees. Loader installer jars
// and native-library classifiers are both plain ZIP files.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"launchmc/errs"
)

// openReader opens a zip for reading. Entry names with ".." are rejected
// per entry by sanitize, so the reader-level insecure-path error is not
// treated as fatal.
func openReader(zipPath string) (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("open %s: %w", zipPath, err)
	}
	return r, nil
}

// ExtractAll extracts every entry of the archive into outDir, recreating
// directory entries. Entries with a ".." path segment are skipped.
func ExtractAll(zipPath string, outDir string) error {
	r, err := openReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	err = os.MkdirAll(outDir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", outDir, err)
	}

	for _, f := range r.File {
		name := sanitize(f.Name)
		if name == "" {
			continue
		}
		dst := filepath.Join(outDir, filepath.FromSlash(name))
		if f.FileInfo().IsDir() {
			err = os.MkdirAll(dst, os.ModePerm)
			if err != nil {
				return fmt.Errorf("mkdir %s: %w", dst, err)
			}
			continue
		}
		err = writeEntry(f, dst)
		if err != nil {
			return err
		}
	}
	return nil
}

// ExtractFile extracts the single entry with the given name to outPath.
// Returns a not-found error if the archive has no such entry.
func ExtractFile(zipPath string, name string, outPath string) error {
	r, err := openReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		return writeEntry(f, outPath)
	}
	return errs.NotFoundf("file %q in the zip archive", name)
}

// ExtractDir extracts every entry nested under prefix into outDir,
// preserving the structure relative to the prefix. Returns a not-found
// error if no entry matched.
func ExtractDir(zipPath string, prefix string, outDir string) error {
	r, err := openReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	err = os.MkdirAll(outDir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", outDir, err)
	}

	found := false
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		found = true
		rel := sanitize(strings.TrimPrefix(f.Name, prefix))
		if rel == "" {
			continue
		}
		dst := filepath.Join(outDir, filepath.FromSlash(rel))
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			err = os.MkdirAll(dst, os.ModePerm)
			if err != nil {
				return fmt.Errorf("mkdir %s: %w", dst, err)
			}
			continue
		}
		err = writeEntry(f, dst)
		if err != nil {
			return err
		}
	}
	if !found {
		return errs.NotFoundf("directory %q in the zip archive", prefix)
	}
	return nil
}

// ReadEntry returns the content of a single named entry without writing it
// to disk. Used to read jar manifests.
func ReadEntry(zipPath string, name string) (string, error) {
	r, err := openReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open entry %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("read entry %s: %w", name, err)
		}
		return string(data), nil
	}
	return "", errs.NotFoundf("file %q in the zip archive", name)
}

func writeEntry(f *zip.File, dst string) error {
	err := os.MkdirAll(filepath.Dir(dst), os.ModePerm)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(dst), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	w, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer w.Close()

	_, err = io.Copy(w, rc)
	if err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// sanitize normalizes an entry name and rejects path escapes.
func sanitize(name string) string {
	name = path.Clean(strings.TrimPrefix(name, "/"))
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return ""
	}
	return name
}
