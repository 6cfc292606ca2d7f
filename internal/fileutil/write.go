package fileutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrRoundTrip means serialized output did not parse back, so nothing was
// written.
var ErrRoundTrip = errors.New("serialized output does not round-trip")

// writeTemp fills the temporary file. Tests replace it to simulate a
// process dying mid-write.
var writeTemp = func(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// WriteAtomic writes data to a temporary sibling of path and renames it
// into place. Any failure before the rename leaves path untouched and
// removes the temporary file.
func WriteAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = writeTemp(tmp, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// WriteJSONAtomic serializes value, checks the bytes decode back, then
// writes them with WriteAtomic.
func WriteJSONAtomic(path string, value any) error {
	data, err := MarshalJSON(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := checkRoundTrip(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return WriteAtomic(path, data, 0644)
}

func checkRoundTrip(data []byte) error {
	if !json.Valid(data) {
		return ErrRoundTrip
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var probe any
	if err := decoder.Decode(&probe); err != nil {
		return fmt.Errorf("%w: %v", ErrRoundTrip, err)
	}
	return nil
}

// CopyIfMissing copies src to dst unless dst already exists. It reports
// whether a copy was made.
func CopyIfMissing(src, dst string) (bool, error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to inspect %s: %w", dst, err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return false, err
	}
	if err := WriteAtomic(dst, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}
