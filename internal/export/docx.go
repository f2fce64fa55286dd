// Package export serialises documents into downloadable artifacts.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docentia/internal/document"
	"github.com/fumiama/go-docx"
)

// MediaTypeDOCX is the content type of a .docx download.
const MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DefaultTitle is used when an export request carries no title.
const DefaultTitle = "Documento DocentIA"

// Heading sizes in points. go-docx ships no heading styles in its default
// theme, so headings are rendered as bold sized runs.
var headingSizePt = map[int]int{
	0: 28,
	1: 16,
	2: 14,
	3: 12,
}

// Filename derives the download name from a title: spaces become
// underscores and the .docx extension is appended.
func Filename(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = DefaultTitle
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	return name + ".docx"
}

// WriteDOCX renders doc as a .docx file into w.
func WriteDOCX(w io.Writer, doc document.Document) error {
	f := docx.New().WithDefaultTheme().WithA4Page()

	number := 0
	for _, b := range doc.Blocks {
		if _, ok := b.(document.NumberedItem); !ok {
			number = 0
		}
		switch blk := b.(type) {
		case document.Heading:
			p := f.AddParagraph()
			if blk.Level == 0 {
				p.Justification("center")
			}
			size, ok := headingSizePt[blk.Level]
			if !ok {
				size = headingSizePt[3]
			}
			addRun(p, blk.Content).Bold().Size(halfPoints(size))
		case document.BulletItem:
			addRun(f.AddParagraph(), "• "+blk.Content)
		case document.NumberedItem:
			number++
			addRun(f.AddParagraph(), fmt.Sprintf("%d. %s", number, blk.Content))
		case document.Paragraph:
			p := f.AddParagraph()
			for _, r := range blk.Runs {
				run := addRun(p, r.Text)
				if r.Bold {
					run.Bold()
				}
			}
		}
	}

	if doc.Footer.Text != "" {
		p := f.AddParagraph()
		if doc.Footer.Align != "" {
			p.Justification(doc.Footer.Align)
		}
		run := addRun(p, doc.Footer.Text)
		if doc.Footer.SizePt > 0 {
			run.Size(halfPoints(doc.Footer.SizePt))
		}
		if doc.Footer.Color != "" {
			run.Color(doc.Footer.Color)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// addRun appends text and marks every text node space-preserving so run
// boundaries around bold spans keep their spaces.
func addRun(p *docx.Paragraph, text string) *docx.Run {
	run := p.AddText(text)
	for _, c := range run.Children {
		if t, ok := c.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	return run
}

// halfPoints converts a point size to the w:sz unit.
func halfPoints(pt int) string {
	return strconv.Itoa(pt * 2)
}
