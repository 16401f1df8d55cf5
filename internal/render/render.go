// Package render turns scan results into self-contained HTML index pages.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/edusite/indexgen/internal/classify"
	"github.com/edusite/indexgen/internal/config"
	"github.com/edusite/indexgen/internal/meta"
	"github.com/edusite/indexgen/internal/scan"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Display formats for the generation timestamps stamped on every page.
const (
	generatedFormat = "02/01/2006 à 15:04"
	updatedFormat   = "02/01/2006 15:04"
)

// Renderer renders directory and root index pages. The generation time is a
// parameter of every render call, so output is reproducible under test.
type Renderer struct {
	cfg *config.Config
	tpl *template.Template
}

// New parses the embedded page templates.
func New(cfg *config.Config) (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{cfg: cfg, tpl: tpl}, nil
}

type pageBase struct {
	Site        config.Site
	Theme       config.Theme
	BaseURL     string
	HomeURL     string
	GeneratedAt string
	UpdatedAt   string
}

type fileItem struct {
	meta.Record
	URL string
}

type subdirItem struct {
	Name string
	URL  string
}

type directoryPage struct {
	pageBase
	Name    string
	Path    string
	Files   []fileItem
	Subdirs []subdirItem
}

type dirCard struct {
	Name  string
	URL   string
	Count int
}

type rootPage struct {
	pageBase
	TotalFiles  int
	HTMLFiles   int
	QuizFiles   int
	TotalSize   string
	Directories []dirCard
	RecordsJSON template.JS
}

// DirectoryPage renders the index page for one directory. A directory with
// neither files nor subdirectories still gets a page, with an explicit
// empty state, so every generated link has a target.
func (r *Renderer) DirectoryPage(dir string, files []meta.Record, subdirs []string, now time.Time) ([]byte, error) {
	sorted := sortByName(files)

	items := make([]fileItem, len(sorted))
	for i, f := range sorted {
		items[i] = fileItem{Record: f, URL: r.resourceURL(f.Path)}
	}

	subs := make([]subdirItem, len(subdirs))
	for i, s := range subdirs {
		subs[i] = subdirItem{Name: path.Base(s), URL: r.indexURL(s)}
	}

	data := directoryPage{
		pageBase: r.base(now),
		Name:     path.Base(dir),
		Path:     dir,
		Files:    items,
		Subdirs:  subs,
	}
	return r.execute("directory.tmpl", data)
}

// RootPage renders the landing page: aggregate statistics, directory
// navigation cards, and the embedded client-side search index covering every
// scanned record.
func (r *Renderer) RootPage(res *scan.Result, now time.Time) ([]byte, error) {
	sorted := sortByName(res.Files)

	var htmlFiles, quizFiles int
	for _, f := range sorted {
		if f.Extension == ".html" || f.Extension == ".htm" {
			htmlFiles++
		}
		lower := strings.ToLower(f.Path)
		if strings.Contains(lower, "quiz") || strings.Contains(lower, "questionnaire") {
			quizFiles++
		}
	}

	var cards []dirCard
	for _, d := range res.Dirs {
		if strings.Contains(d, "/") {
			continue // top-level navigation only
		}
		count := 0
		for _, f := range sorted {
			if f.Dir() == d || strings.HasPrefix(f.Path, d+"/") {
				count++
			}
		}
		cards = append(cards, dirCard{Name: d, URL: r.indexURL(d), Count: count})
	}

	payload, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal search index: %w", err)
	}

	data := rootPage{
		pageBase:    r.base(now),
		TotalFiles:  len(sorted),
		HTMLFiles:   htmlFiles,
		QuizFiles:   quizFiles,
		TotalSize:   totalSizeFormatted(res),
		Directories: cards,
		RecordsJSON: template.JS(payload),
	}
	return r.execute("root.tmpl", data)
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) base(now time.Time) pageBase {
	return pageBase{
		Site:        r.cfg.Site,
		Theme:       r.cfg.Theme,
		BaseURL:     r.cfg.BaseURL,
		HomeURL:     r.cfg.BaseURL + "/index.html",
		GeneratedAt: now.Format(generatedFormat),
		UpdatedAt:   now.Format(updatedFormat),
	}
}

// resourceURL builds the link target for a resource file.
func (r *Renderer) resourceURL(relPath string) string {
	return r.cfg.BaseURL + "/" + escapePath(relPath)
}

// indexURL builds the link target for a directory's generated index page.
func (r *Renderer) indexURL(dir string) string {
	return r.cfg.BaseURL + "/" + escapePath(dir) + "/index.html"
}

// escapePath URL-escapes each path segment, keeping the slashes.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// sortByName returns a copy of files ordered case-insensitively by display
// name, with the exact name as tie-break so ordering is total.
func sortByName(files []meta.Record) []meta.Record {
	sorted := make([]meta.Record, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := strings.ToLower(sorted[i].Name), strings.ToLower(sorted[j].Name)
		if a != b {
			return a < b
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

func totalSizeFormatted(res *scan.Result) string {
	return classify.FormatSize(res.TotalSize())
}
