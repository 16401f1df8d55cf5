package meta

import (
	"bytes"
	"path"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/classify"
	"github.com/edusite/indexgen/internal/config"
	mfs "github.com/edusite/indexgen/internal/fs"
)

// previewLimit caps the length of a meta-description fallback preview.
const previewLimit = 200

// Extractor builds Records from files in a resource tree.
type Extractor struct {
	fsys mfs.FileSystem
	cfg  *config.Config
	log  *zap.Logger
	md   goldmark.Markdown
}

// NewExtractor creates an Extractor reading from the given filesystem.
func NewExtractor(fsys mfs.FileSystem, cfg *config.Config, log *zap.Logger) *Extractor {
	return &Extractor{
		fsys: fsys,
		cfg:  cfg,
		log:  log,
		md:   goldmark.New(),
	}
}

// Extract builds the Record for the file at relPath. Content-level failures
// (unreadable or unparseable HTML) degrade to an empty preview and no
// content tags; they never fail the extraction.
func (e *Extractor) Extract(relPath string, info mfs.FileInfo) Record {
	ext := strings.ToLower(path.Ext(relPath))
	class := classify.Classify(ext)

	rec := Record{
		Name:          info.Name,
		Path:          relPath,
		Category:      class.Category,
		Extension:     ext,
		Size:          info.Size,
		SizeFormatted: classify.FormatSize(info.Size),
		Modified:      info.ModTime.Format(modifiedFormat),
		Icon:          class.Icon,
		Label:         class.Label,
		ModTime:       info.ModTime,
	}

	tags := make(map[string]struct{})

	switch ext {
	case ".html", ".htm":
		e.extractHTML(&rec, relPath, tags)
	case ".md":
		e.extractMarkdownTitle(&rec, relPath)
	}

	// Tags also come from the file name and path, independently of content.
	nameLower := strings.ToLower(rec.Name)
	pathLower := strings.ToLower(rec.Path)
	for _, tag := range e.cfg.Tags {
		if strings.Contains(nameLower, tag) || strings.Contains(pathLower, tag) {
			tags[tag] = struct{}{}
		}
	}

	rec.Tags = make([]string, 0, len(tags))
	for tag := range tags {
		rec.Tags = append(rec.Tags, tag)
	}
	sort.Strings(rec.Tags)

	return rec
}

// extractHTML pulls the title, a preview and vocabulary tags out of an HTML
// document. Matching against the document text is a plain substring scan, so
// a tag can match inside a longer word; that looseness is intentional.
func (e *Extractor) extractHTML(rec *Record, relPath string, tags map[string]struct{}) {
	data, err := e.fsys.ReadFile(relPath)
	if err != nil {
		e.log.Warn("cannot read HTML file, skipping content extraction",
			zap.String("path", relPath), zap.Error(err))
		return
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		e.log.Warn("cannot parse HTML file, skipping content extraction",
			zap.String("path", relPath), zap.Error(err))
		return
	}

	rec.Preview = strings.TrimSpace(doc.Find("title").First().Text())

	if keywords, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		for _, keyword := range strings.Split(keywords, ",") {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if e.inVocabulary(keyword) {
				tags[keyword] = struct{}{}
			}
		}
	}

	if rec.Preview == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			rec.Preview = truncate(strings.TrimSpace(desc), previewLimit)
		}
	}

	content := strings.ToLower(doc.Text())
	for _, tag := range e.cfg.Tags {
		if strings.Contains(content, tag) {
			tags[tag] = struct{}{}
		}
	}
}

// extractMarkdownTitle uses the first heading of a Markdown document as the
// preview text.
func (e *Extractor) extractMarkdownTitle(rec *Record, relPath string) {
	data, err := e.fsys.ReadFile(relPath)
	if err != nil {
		e.log.Warn("cannot read Markdown file, skipping title extraction",
			zap.String("path", relPath), zap.Error(err))
		return
	}

	doc := e.md.Parser().Parse(text.NewReader(data))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			rec.Preview = headingText(heading, data)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
}

func (e *Extractor) inVocabulary(keyword string) bool {
	for _, tag := range e.cfg.Tags {
		if keyword == tag {
			return true
		}
	}
	return false
}

// headingText extracts the text content of a heading node.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(buf.String())
}

// truncate limits a string to n characters without splitting a multi-byte rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
