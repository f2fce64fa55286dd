package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docentia/internal/document"
)

// Parser converts raw reference material into a flat block document.
type Parser interface {
	Parse(r io.Reader, filename string) (*document.Document, error)
}

// Options tune parsers that shell out or read binary formats.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions accepted as reference material.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// newDocument starts a parsed document. Parsed material carries no footer;
// that belongs to exported documents only.
func newDocument(title string) *document.Document {
	d := document.New(title)
	d.Footer = document.Footer{}
	return &d
}

func baseTitle(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func addParagraph(d *document.Document, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.Append(document.Paragraph{Runs: []document.Run{{Text: text}}})
}

func addHeading(d *document.Document, level int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.Append(document.Heading{Level: level, Content: text})
}
