package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/config"
	mfs "github.com/edusite/indexgen/internal/fs"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestExtractor(t *testing.T, root string) *Extractor {
	t.Helper()
	return NewExtractor(mfs.NewLocalFS(root), config.DefaultConfig(), zap.NewNop())
}

func statFixture(t *testing.T, fsys mfs.FileSystem, rel string) mfs.FileInfo {
	t.Helper()
	info, err := fsys.Stat(rel)
	if err != nil {
		t.Fatalf("stat %s: %v", rel, err)
	}
	return info
}

func hasTag(rec Record, tag string) bool {
	for _, t := range rec.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func TestExtractHTMLMetadata(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Module 1/quiz-sommeil.html", `<!DOCTYPE html>
<html><head>
<title>Quiz Sommeil</title>
<meta name="keywords" content="sommeil, couple, inconnu">
<meta name="description" content="Un questionnaire sur le sommeil.">
</head><body><p>Exercice de communication pour le couple.</p></body></html>`)

	fsys := mfs.NewLocalFS(root)
	ex := newTestExtractor(t, root)
	rec := ex.Extract("Module 1/quiz-sommeil.html", statFixture(t, fsys, "Module 1/quiz-sommeil.html"))

	if rec.Preview != "Quiz Sommeil" {
		t.Errorf("expected title as preview, got %q", rec.Preview)
	}
	if rec.Category != "quiz" {
		t.Errorf("expected category quiz, got %q", rec.Category)
	}
	for _, want := range []string{"sommeil", "couple", "communication", "exercice"} {
		if !hasTag(rec, want) {
			t.Errorf("expected tag %q, got %v", want, rec.Tags)
		}
	}
	if hasTag(rec, "inconnu") {
		t.Error("keyword outside the vocabulary must be dropped")
	}
}

func TestExtractHTMLDescriptionFallback(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "page.html",
		`<html><head><meta name="description" content="Ressource sur la gestion des conflits."></head><body></body></html>`)

	fsys := mfs.NewLocalFS(root)
	ex := newTestExtractor(t, root)
	rec := ex.Extract("page.html", statFixture(t, fsys, "page.html"))

	if rec.Preview != "Ressource sur la gestion des conflits." {
		t.Errorf("expected description fallback, got %q", rec.Preview)
	}
}

func TestFilenameTagsAreSubstringMatches(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "exercice-communication.html", `<html><body>ok</body></html>`)

	fsys := mfs.NewLocalFS(root)
	ex := newTestExtractor(t, root)
	rec := ex.Extract("exercice-communication.html", statFixture(t, fsys, "exercice-communication.html"))

	if !hasTag(rec, "exercice") || !hasTag(rec, "communication") {
		t.Errorf("expected name-derived tags, got %v", rec.Tags)
	}
}

func TestPathTags(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "module-3/grille.pdf", "%PDF-1.4")

	fsys := mfs.NewLocalFS(root)
	ex := newTestExtractor(t, root)
	rec := ex.Extract("module-3/grille.pdf", statFixture(t, fsys, "module-3/grille.pdf"))

	if !hasTag(rec, "module-3") {
		t.Errorf("expected path-derived tag module-3, got %v", rec.Tags)
	}
	if rec.Category != "document" {
		t.Errorf("expected category document, got %q", rec.Category)
	}
}

func TestUnreadableHTMLDegrades(t *testing.T) {
	root := t.TempDir()
	ex := newTestExtractor(t, root)

	// File never existed: content extraction degrades, name tags survive.
	info := mfs.FileInfo{Name: "ghost-sommeil.html", Size: 42, ModTime: time.Unix(0, 0)}
	rec := ex.Extract("ghost-sommeil.html", info)

	if rec.Preview != "" {
		t.Errorf("expected empty preview, got %q", rec.Preview)
	}
	if !hasTag(rec, "sommeil") {
		t.Errorf("expected name-derived tag despite unreadable content, got %v", rec.Tags)
	}
}

func TestMarkdownTitle(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "notes.md", "# Guide de Communication\n\nQuelques notes.\n")

	fsys := mfs.NewLocalFS(root)
	ex := newTestExtractor(t, root)
	rec := ex.Extract("notes.md", statFixture(t, fsys, "notes.md"))

	if rec.Preview != "Guide de Communication" {
		t.Errorf("expected first heading as preview, got %q", rec.Preview)
	}
}

func TestRecordBasicFields(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Outils/data.csv", "a,b,c\n")

	fsys := mfs.NewLocalFS(root)
	ex := newTestExtractor(t, root)
	rec := ex.Extract("Outils/data.csv", statFixture(t, fsys, "Outils/data.csv"))

	if rec.Name != "data.csv" {
		t.Errorf("expected name data.csv, got %q", rec.Name)
	}
	if rec.Extension != ".csv" {
		t.Errorf("expected extension .csv, got %q", rec.Extension)
	}
	if rec.Size != 6 {
		t.Errorf("expected size 6, got %d", rec.Size)
	}
	if rec.SizeFormatted != "6 B" {
		t.Errorf("expected size 6 B, got %q", rec.SizeFormatted)
	}
	if rec.Dir() != "Outils" {
		t.Errorf("expected dir Outils, got %q", rec.Dir())
	}
	if rec.Tags == nil {
		t.Error("tags must be non-nil so the search index serializes an array")
	}
}
