// Package fs abstracts read access to the resource tree so the scanner and
// the metadata extractor can be pointed at fixture directories in tests.
package fs

import "time"

// FileInfo holds file metadata.
type FileInfo struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// DirEntry represents a single directory entry.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem is a read-only view of a resource tree. All paths are relative
// to the tree root and forward-slash separated.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]DirEntry, error)
}
