package gateway

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// writeObject materializes a payload at path via create-then-rename so
// concurrent readers never see partial content. Returns the payload size.
func writeObject(path string, r io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, zerr.Wrap(err, "failed to create object directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, zerr.Wrap(err, "failed to create temp object file")
	}
	tmpPath := tmp.Name()

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return 0, zerr.Wrap(err, "failed to write object payload")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return 0, zerr.Wrap(err, "failed to sync object payload")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, zerr.Wrap(err, "failed to close object payload")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, zerr.Wrap(err, "failed to move object payload into place")
	}
	return size, nil
}
