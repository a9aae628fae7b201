package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ContentHash returns the sha256 hex digest of content. The build cache and
// the change detector share this so their notions of "same bytes" agree.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// WriteIfChanged writes content to path unless the file already holds the
// same bytes, and reports whether a write happened. A missing or unreadable
// file counts as changed. Writes go through a temp file in the same
// directory followed by a rename, so consumers never observe a partial file.
func WriteIfChanged(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil {
		if ContentHash(existing) == ContentHash(content) {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		os.Remove(tmp)
		return false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, err
	}
	return true, nil
}
