package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/dgallion1/docentia/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MediaTypeHTML is the content type of the preview page.
const MediaTypeHTML = "text/html; charset=utf-8"

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:Calibri,Arial,sans-serif;max-width:52rem;margin:2rem auto;line-height:1.5}
h1.title{text-align:center}
table{border-collapse:collapse}th,td{border:1px solid #999;padding:.3rem .5rem}
footer{text-align:center;font-size:9pt;color:#{{.Footer.Color}};margin-top:3rem}
</style>
</head>
<body>
<h1 class="title">{{.Title}}</h1>
{{.Body}}
<footer>{{.Footer.Text}}</footer>
</body>
</html>
`))

// WriteHTML renders the raw Markdown as a standalone HTML page. Unlike the
// .docx export it goes through a full Markdown parser, so tables and code
// blocks keep their structure.
func WriteHTML(w io.Writer, title, md string) error {
	if title == "" {
		title = DefaultTitle
	}
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return pageTmpl.Execute(w, struct {
		Title  string
		Body   template.HTML
		Footer document.Footer
	}{
		Title:  title,
		Body:   template.HTML(body.String()),
		Footer: document.DefaultFooter(),
	})
}
