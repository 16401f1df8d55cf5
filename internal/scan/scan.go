// Package scan enumerates resource files and directories under a root,
// producing the flat record collection every index page is rendered from.
package scan

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/config"
	mfs "github.com/edusite/indexgen/internal/fs"
	"github.com/edusite/indexgen/internal/meta"
)

// Result is the outcome of one scan pass: every indexable file as a Record,
// plus the root-relative paths of every visited directory. The scanner
// imposes no ordering on files; ordering is the renderer's concern.
type Result struct {
	Files []meta.Record
	Dirs  []string
}

// Scanner enumerates the files and directories of a resource tree.
type Scanner interface {
	Scan() (*Result, error)
}

// New returns the scanner strategy selected by the configuration.
func New(fsys mfs.FileSystem, cfg *config.Config, ex *meta.Extractor, log *zap.Logger) Scanner {
	if cfg.Mode == config.ModeModules {
		return NewModuleScanner(fsys, cfg, ex, log)
	}
	return NewRecursiveScanner(fsys, cfg, ex, log)
}

// FilesIn returns the records whose parent directory is dir ("" for the root).
func (r *Result) FilesIn(dir string) []meta.Record {
	var out []meta.Record
	for _, f := range r.Files {
		if f.Dir() == dir {
			out = append(out, f)
		}
	}
	return out
}

// Subdirs returns the immediate child directories of dir ("" for the root),
// sorted.
func (r *Result) Subdirs(dir string) []string {
	var out []string
	for _, d := range r.Dirs {
		if parentDir(d) == dir {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// TotalSize returns the byte sum of every scanned file.
func (r *Result) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size
	}
	return total
}

func parentDir(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i]
	}
	return ""
}
