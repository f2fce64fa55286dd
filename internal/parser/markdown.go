package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docentia/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.parse(src, baseTitle(filename))
}

func (p *MarkdownParser) parse(src []byte, title string) (*document.Document, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	doc := newDocument(title)

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			addHeading(doc, node.Level, extractText(node, src))
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				t := extractText(item, src)
				if t == "" {
					continue
				}
				if node.IsOrdered() {
					doc.Append(document.NumberedItem{Content: t})
				} else {
					doc.Append(document.BulletItem{Content: t})
				}
			}
		case *ast.Paragraph:
			if runs := inlineRuns(node, src); len(runs) > 0 {
				doc.Append(document.Paragraph{Runs: runs})
			}
		default:
			addParagraph(doc, extractText(n, src))
		}
	}

	return doc, nil
}

// inlineRuns flattens a paragraph's inlines, keeping strong emphasis as bold.
func inlineRuns(n ast.Node, src []byte) []document.Run {
	var runs []document.Run
	var walk func(ast.Node, bool)
	walk = func(n ast.Node, bold bool) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				s := string(c.Value(src))
				if c.SoftLineBreak() || c.HardLineBreak() {
					s += " "
				}
				runs = appendRun(runs, s, bold)
			case *ast.Emphasis:
				walk(c, bold || c.Level == 2)
			default:
				walk(c, bold)
			}
		}
	}
	walk(n, false)

	if len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " ")
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " ")
		if runs[last].Text == "" {
			runs = runs[:last]
		}
	}
	return runs
}

// appendRun merges adjacent spans with the same emphasis.
func appendRun(runs []document.Run, s string, bold bool) []document.Run {
	if s == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Bold == bold {
		runs[n-1].Text += s
		return runs
	}
	return append(runs, document.Run{Text: s, Bold: bold})
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// such as code blocks only carry raw lines; everything else is read from
// its children.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.FirstChild() == nil {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		if buf.Len() > 0 && c.Type() == ast.TypeBlock {
			buf.WriteByte('\n')
		}
		buf.WriteString(extractText(c, src))
	}
	return strings.TrimSpace(buf.String())
}
