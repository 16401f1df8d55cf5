// Package meta builds metadata records for discovered resource files,
// including titles, previews and thematic tags extracted from HTML and
// Markdown content.
package meta

import "time"

// modifiedFormat is the display format for modification timestamps.
const modifiedFormat = "2006-01-02 15:04"

// Record describes one discoverable resource. Records are built once at scan
// time and are read-only inputs to rendering; the JSON form is embedded in
// the root page as the client-side search index.
type Record struct {
	Name          string   `json:"name"`
	Path          string   `json:"path"`
	Category      string   `json:"category"`
	Extension     string   `json:"extension"`
	Size          int64    `json:"size"`
	SizeFormatted string   `json:"size_formatted"`
	Modified      string   `json:"modified"`
	Tags          []string `json:"tags"`
	Preview       string   `json:"preview"`
	Icon          string   `json:"icon"`

	// Display-only fields, not part of the search index.
	Label   string    `json:"-"`
	ModTime time.Time `json:"-"`
}

// Dir returns the root-relative directory containing the record, or "" for
// files at the scan root.
func (r Record) Dir() string {
	for i := len(r.Path) - 1; i >= 0; i-- {
		if r.Path[i] == '/' {
			return r.Path[:i]
		}
	}
	return ""
}
