package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// errRenderPanic is surfaced when the markdown renderer panics mid-render.
var errRenderPanic = errors.New("markdown renderer panicked")

// ErrExport wraps any document generation failure. A failed export leaves
// the presenter and the displayed report untouched; the control simply
// re-enables for another attempt.
var ErrExport = errors.New("export failed")

// Document is the exportable snapshot of the active tab: its title and body
// exactly as currently selected.
type Document struct {
	Tab      Tab
	Title    string
	Markdown string
}

// DocumentWriter produces a downloadable file from a report snapshot. The
// layout mechanism is a collaborator behind this interface; the core only
// contracts the deterministic file name <AppName>_<tab>_Strategy.<ext>.
type DocumentWriter interface {
	Ext() string
	Write(doc Document) (path string, err error)
}

// Snapshot captures the active tab for export.
func (p *Presenter) Snapshot() Document {
	active := p.Active()
	return Document{
		Tab:      p.active,
		Title:    active.Title,
		Markdown: active.Content,
	}
}

// Export writes the active tab through the given writer and returns the
// produced file path.
func (p *Presenter) Export(w DocumentWriter) (string, error) {
	path, err := w.Write(p.Snapshot())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	return path, nil
}

// FileName returns the deterministic export name for a tab.
func FileName(t Tab, ext string) string {
	return fmt.Sprintf("AgriAssist_%s_Strategy.%s", t, ext)
}

// MarkdownWriter is the shipped DocumentWriter: it lays the snapshot out as
// a standalone markdown document in Dir.
type MarkdownWriter struct {
	Dir string
	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewMarkdownWriter creates a writer targeting dir, defaulting to the
// current directory.
func NewMarkdownWriter(dir string) *MarkdownWriter {
	if dir == "" {
		dir = "."
	}
	return &MarkdownWriter{Dir: dir, now: time.Now}
}

// Ext returns "md".
func (w *MarkdownWriter) Ext() string {
	return "md"
}

// Write lays out the document and writes it under Dir.
func (w *MarkdownWriter) Write(doc Document) (string, error) {
	now := time.Now
	if w.now != nil {
		now = w.now
	}

	var sb strings.Builder
	title := doc.Title
	if title == "" {
		title = doc.Tab.Display() + " Strategy"
	}
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(doc.Markdown)
	if !strings.HasSuffix(doc.Markdown, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n---\nExported by AgriAssist on %s\n",
		now().Format("2006-01-02 15:04")))

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(w.Dir, FileName(doc.Tab, w.Ext()))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
