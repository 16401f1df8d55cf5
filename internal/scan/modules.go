package scan

import (
	"errors"
	"fmt"
	"os"
	"path"

	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/config"
	mfs "github.com/edusite/indexgen/internal/fs"
	"github.com/edusite/indexgen/internal/meta"
)

// ModuleScanner lists only the immediate file children of a fixed set of
// top-level module folders. Intended for flat layouts where every resource
// lives directly inside a named module directory.
type ModuleScanner struct {
	fsys mfs.FileSystem
	cfg  *config.Config
	ex   *meta.Extractor
	log  *zap.Logger
}

// NewModuleScanner creates a scanner over the configured module folders.
func NewModuleScanner(fsys mfs.FileSystem, cfg *config.Config, ex *meta.Extractor, log *zap.Logger) *ModuleScanner {
	return &ModuleScanner{fsys: fsys, cfg: cfg, ex: ex, log: log}
}

// Scan lists each configured module folder. Missing folders are skipped
// silently and produce no directory entry. Directories keep the configured
// module order.
func (s *ModuleScanner) Scan() (*Result, error) {
	res := &Result{}

	for _, module := range s.cfg.Modules {
		info, err := s.fsys.Stat(module)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.log.Debug("module folder missing, skipped", zap.String("module", module))
				continue
			}
			return nil, fmt.Errorf("stat module %q: %w", module, err)
		}
		if !info.IsDir {
			continue
		}
		res.Dirs = append(res.Dirs, module)

		entries, err := s.fsys.ReadDir(module)
		if err != nil {
			return nil, fmt.Errorf("read module %q: %w", module, err)
		}
		for _, entry := range entries {
			if entry.IsDir || s.cfg.IsIgnoredFile(entry.Name) || s.cfg.IsIgnoredDir(entry.Name) {
				continue
			}
			rel := path.Join(module, entry.Name)
			fi, err := s.fsys.Stat(rel)
			if err != nil {
				return nil, fmt.Errorf("stat %q: %w", rel, err)
			}
			res.Files = append(res.Files, s.ex.Extract(rel, fi))
		}
	}

	s.log.Info("scan complete",
		zap.Int("files", len(res.Files)),
		zap.Int("modules", len(res.Dirs)))
	return res, nil
}
