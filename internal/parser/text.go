package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docentia/internal/document"
)

// TextParser handles plain text files. Blank lines separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := newDocument(baseTitle(filename))
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			addParagraph(doc, current.String())
			current.Reset()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	addParagraph(doc, current.String())

	return doc, nil
}

// ParseText parses pasted material the way a Markdown file is parsed.
func ParseText(title, text string) (*document.Document, error) {
	return (&MarkdownParser{}).parse([]byte(text), title)
}
