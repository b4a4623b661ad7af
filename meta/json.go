package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"launchmc/errs"
)

// ReadJSON reads and decodes a cached JSON document.
func ReadJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("read %s: %w", path, err)
	}
	err = json.Unmarshal(data, &v)
	if err != nil {
		return v, errs.Wrap(errs.KindParse, err, "decode %s", path)
	}
	return v, nil
}

// WriteJSON encodes v and writes it to path, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	err = os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
