package scan

import (
	"fmt"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/config"
	mfs "github.com/edusite/indexgen/internal/fs"
	"github.com/edusite/indexgen/internal/meta"
)

// RecursiveScanner walks the whole tree under the root, skipping ignored
// directory names at any depth.
type RecursiveScanner struct {
	fsys mfs.FileSystem
	cfg  *config.Config
	ex   *meta.Extractor
	log  *zap.Logger
}

// NewRecursiveScanner creates a scanner walking the full tree.
func NewRecursiveScanner(fsys mfs.FileSystem, cfg *config.Config, ex *meta.Extractor, log *zap.Logger) *RecursiveScanner {
	return &RecursiveScanner{fsys: fsys, cfg: cfg, ex: ex, log: log}
}

// Scan walks the tree and returns every indexable file and visited directory.
func (s *RecursiveScanner) Scan() (*Result, error) {
	res := &Result{}
	if err := s.walk("", res); err != nil {
		return nil, err
	}
	sort.Strings(res.Dirs)
	s.log.Info("scan complete",
		zap.Int("files", len(res.Files)),
		zap.Int("directories", len(res.Dirs)))
	return res, nil
}

func (s *RecursiveScanner) walk(dir string, res *Result) error {
	entries, err := s.fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		rel := path.Join(dir, entry.Name)

		if entry.IsDir {
			if s.cfg.IsIgnoredDir(entry.Name) {
				continue
			}
			res.Dirs = append(res.Dirs, rel)
			if err := s.walk(rel, res); err != nil {
				return err
			}
			continue
		}

		// Ignore-directory names apply to every path component, so a
		// stray file carrying one (a .DS_Store file on macOS) is
		// skipped too.
		if s.cfg.IsIgnoredFile(entry.Name) || s.cfg.IsIgnoredDir(entry.Name) {
			continue
		}
		info, err := s.fsys.Stat(rel)
		if err != nil {
			return fmt.Errorf("stat %q: %w", rel, err)
		}
		res.Files = append(res.Files, s.ex.Extract(rel, info))
	}
	return nil
}
