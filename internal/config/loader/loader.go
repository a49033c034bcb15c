// Package loader reads configuration sources into typed structs.
//
// Sources are applied onto a value that already holds lower-precedence
// settings, so a source only overwrites the keys it actually sets.
package loader

import "os"

// FileSystem is an abstraction for file system reads, so loaders can be
// tested with in-memory files.
type FileSystem interface {
	// ReadFile reads the entire file at path. A missing file must be
	// reported with an error matching fs.ErrNotExist.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}
