// Package converter turns AI-generated Markdown into a document.Document.
//
// Classification is line-local: every non-blank line becomes exactly one
// block and no state is carried between lines, so tables, code fences and
// wrapped list items come out as plain paragraphs.
package converter

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docentia/internal/document"
)

const boldDelim = "**"

var (
	numberedPrefix = regexp.MustCompile(`^\d+\.`)
	numberedStrip  = regexp.MustCompile(`^\d+\.\s*`)
)

// Convert builds a Document from a title and a Markdown-like body.
// It never fails; unrecognised syntax degrades to a plain paragraph.
func Convert(title, body string) document.Document {
	doc := document.New(title)
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		doc.Append(classify(line))
	}
	return doc
}

// classify maps one trimmed, non-blank line to a block. First match wins.
func classify(line string) document.Block {
	switch {
	case strings.HasPrefix(line, "# "):
		return document.Heading{Level: 1, Content: line[2:]}
	case strings.HasPrefix(line, "## "):
		return document.Heading{Level: 2, Content: line[3:]}
	case strings.HasPrefix(line, "### "):
		return document.Heading{Level: 3, Content: line[4:]}
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return document.BulletItem{Content: line[2:]}
	case numberedPrefix.MatchString(line):
		return document.NumberedItem{Content: numberedStrip.ReplaceAllString(line, "")}
	case strings.Contains(line, boldDelim):
		return document.Paragraph{Runs: SplitBold(line)}
	default:
		return document.Paragraph{Runs: []document.Run{{Text: line}}}
	}
}

// SplitBold splits a line on "**" delimiters. Text between a pair is bold;
// an unterminated trailing segment stays plain. Empty spans are dropped, so
// the runs concatenate to the line minus its delimiters.
func SplitBold(line string) []document.Run {
	parts := strings.Split(line, boldDelim)
	last := len(parts) - 1
	runs := make([]document.Run, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		runs = append(runs, document.Run{
			Text: part,
			Bold: i%2 == 1 && i < last,
		})
	}
	return runs
}
