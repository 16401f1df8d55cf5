// Package generate drives the pipeline: scan once, render one index page per
// directory plus the root landing page, write everything out.
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/config"
	"github.com/edusite/indexgen/internal/fs"
	"github.com/edusite/indexgen/internal/meta"
	"github.com/edusite/indexgen/internal/render"
	"github.com/edusite/indexgen/internal/scan"
)

// Generator regenerates every index page under the configured root.
type Generator struct {
	cfg      *config.Config
	root     string
	scanner  scan.Scanner
	renderer *render.Renderer
	log      *zap.Logger

	// Now supplies the generation timestamp stamped on every page.
	// Overridable so tests get reproducible output.
	Now func() time.Time
}

// New wires the scanner, extractor and renderer for the configured root.
func New(cfg *config.Config, log *zap.Logger) (*Generator, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", cfg.Root, err)
	}

	fsys := fs.NewLocalFS(root)
	extractor := meta.NewExtractor(fsys, cfg, log)
	renderer, err := render.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:      cfg,
		root:     root,
		scanner:  scan.New(fsys, cfg, extractor, log),
		renderer: renderer,
		log:      log,
		Now:      time.Now,
	}, nil
}

// Root returns the absolute root directory pages are written into.
func (g *Generator) Root() string {
	return g.root
}

// Run executes one full scan-and-render pass, overwriting any existing index
// page at each target path. Writes are not transactional: the first failure
// aborts the run and may leave a partially regenerated tree, which the next
// complete run repairs.
func (g *Generator) Run() error {
	result, err := g.scanner.Scan()
	if err != nil {
		return fmt.Errorf("scan %s: %w", g.root, err)
	}

	now := g.Now()

	page, err := g.renderer.RootPage(result, now)
	if err != nil {
		return err
	}
	if err := g.write("", page); err != nil {
		return err
	}

	for _, dir := range result.Dirs {
		page, err := g.renderer.DirectoryPage(dir, result.FilesIn(dir), result.Subdirs(dir), now)
		if err != nil {
			return err
		}
		if err := g.write(dir, page); err != nil {
			return err
		}
	}

	g.log.Info("generation complete",
		zap.Int("files", len(result.Files)),
		zap.Int("pages", len(result.Dirs)+1))
	return nil
}

func (g *Generator) write(dir string, page []byte) error {
	target := filepath.Join(g.root, filepath.FromSlash(dir), "index.html")
	if err := os.WriteFile(target, page, 0o644); err != nil {
		return fmt.Errorf("write index %s: %w", target, err)
	}
	g.log.Info("index written", zap.String("path", target))
	return nil
}
