// Package classify maps file extensions to display icons, categories and
// labels, and formats byte sizes for display.
package classify

import (
	"fmt"
	"strings"
)

// Categories form a small closed set; every file falls into exactly one.
const (
	CategoryQuiz     = "quiz"
	CategoryWeb      = "web"
	CategoryImage    = "image"
	CategoryDocument = "document"
	CategoryData     = "data"
	CategoryOther    = "other"
)

// Class is the display classification of a file.
type Class struct {
	Icon     string
	Category string
	Label    string
}

// categoryTable is ordered: the first category whose extension set contains
// the extension wins, so .html classifies as quiz rather than web.
var categoryTable = []struct {
	category   string
	extensions []string
}{
	{CategoryQuiz, []string{".html"}},
	{CategoryImage, []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}},
	{CategoryDocument, []string{".pdf", ".doc", ".docx"}},
	{CategoryWeb, []string{".htm", ".css", ".js"}},
	{CategoryData, []string{".json", ".xml", ".csv", ".txt"}},
}

var categoryIcons = map[string]string{
	CategoryQuiz:     "📝",
	CategoryWeb:      "🌐",
	CategoryImage:    "🖼️",
	CategoryDocument: "📄",
	CategoryData:     "📊",
	CategoryOther:    "📁",
}

var extensionLabels = map[string]string{
	".html": "Page Interactive",
	".htm":  "Page Web",
	".pdf":  "Document PDF",
	".doc":  "Document Word",
	".docx": "Document Word",
	".md":   "Documentation",
	".mp4":  "Vidéo",
	".jpg":  "Image",
	".jpeg": "Image",
	".png":  "Image",
	".gif":  "Image",
	".svg":  "Image",
	".webp": "Image",
	".json": "Données",
	".xml":  "Données",
	".csv":  "Données",
	".txt":  "Texte",
	".css":  "Feuille de Style",
	".js":   "Script",
}

const defaultLabel = "Fichier"

// Classify returns the icon, category and label for a file extension.
// Unknown extensions get the default classification; there is no error case.
func Classify(ext string) Class {
	ext = strings.ToLower(ext)

	category := CategoryOther
	for _, row := range categoryTable {
		for _, e := range row.extensions {
			if ext == e {
				category = row.category
			}
		}
		if category != CategoryOther {
			break
		}
	}

	label, ok := extensionLabels[ext]
	if !ok {
		label = defaultLabel
	}

	return Class{
		Icon:     categoryIcons[category],
		Category: category,
		Label:    label,
	}
}

// FormatSize renders a byte count as a human-readable base-1024 string:
// whole bytes below 1 KB, one decimal place above ("512 B", "2.0 KB").
func FormatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	for _, unit := range []string{"KB", "MB", "GB"} {
		value /= 1024
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
	}
	return fmt.Sprintf("%.1f TB", value/1024)
}
