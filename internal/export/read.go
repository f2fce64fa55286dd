package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// Paragraph is a paragraph read back from a .docx file.
type Paragraph struct {
	Text      string
	Bold      bool // every non-empty run is bold
	Centered  bool
	SizeHalfs string // size of the first sized run, in half-points
	Color     string
}

// ReadDOCX returns the paragraphs of a .docx in body order.
func ReadDOCX(r io.ReaderAt, size int64) ([]Paragraph, error) {
	f, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var out []Paragraph
	for _, item := range f.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		out = append(out, readParagraph(para))
	}
	return out, nil
}

func readParagraph(para *docx.Paragraph) Paragraph {
	var (
		p        Paragraph
		buf      strings.Builder
		runs     int
		boldRuns int
	)
	if para.Properties != nil && para.Properties.Justification != nil {
		p.Centered = para.Properties.Justification.Val == "center"
	}
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var text strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				text.WriteString(t.Text)
			}
		}
		if text.Len() == 0 {
			continue
		}
		buf.WriteString(text.String())
		runs++
		if props := run.RunProperties; props != nil {
			if props.Bold != nil {
				boldRuns++
			}
			if props.Size != nil && p.SizeHalfs == "" {
				p.SizeHalfs = props.Size.Val
			}
			if props.Color != nil && p.Color == "" {
				p.Color = props.Color.Val
			}
		}
	}
	p.Text = buf.String()
	p.Bold = runs > 0 && boldRuns == runs
	return p
}
