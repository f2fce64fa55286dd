package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docentia/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Heading styles become headings and bold
// runs stay bold.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// Uploads are already bounded by the request size limit.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	f, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := newDocument(baseTitle(filename))
	for _, item := range f.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		runs := docxRuns(para)
		if len(runs) == 0 {
			continue
		}
		if level := docxHeadingLevel(para); level > 0 {
			addHeading(doc, level, document.Paragraph{Runs: runs}.Text())
			continue
		}
		doc.Append(document.Paragraph{Runs: runs})
	}

	return doc, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if rest, ok := strings.CutPrefix(style, "heading"); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
		return int(rest[0] - '0')
	}
	if style == "title" {
		return 1
	}
	return 0
}

func docxRuns(para *docx.Paragraph) []document.Run {
	var runs []document.Run
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		bold := run.RunProperties != nil && run.RunProperties.Bold != nil
		runs = appendRun(runs, buf.String(), bold)
	}

	if len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " \t")
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " \t")
		if strings.TrimSpace(document.Paragraph{Runs: runs}.Text()) == "" {
			return nil
		}
	}
	return runs
}
