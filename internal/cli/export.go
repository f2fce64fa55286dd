package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dgallion1/docentia/internal/converter"
	"github.com/dgallion1/docentia/internal/export"
	"github.com/spf13/cobra"
)

type frontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// readMarkdown returns the body of a Markdown file and the title from its
// front matter, if any.
func readMarkdown(path string) (title, body string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	var meta frontMatter
	rest, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return "", "", fmt.Errorf("parse front matter: %w", err)
	}
	return strings.TrimSpace(meta.Title), string(rest), nil
}

// writeDOCXFile converts body and writes it to out.
func writeDOCXFile(out, title, body string) error {
	doc := converter.Convert(title, body)
	var buf bytes.Buffer
	if err := export.WriteDOCX(&buf, doc); err != nil {
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

func newExportCmd() *cobra.Command {
	var title, out string
	cmd := &cobra.Command{
		Use:   "export <file.md>",
		Short: "Convert a Markdown file into a Word document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metaTitle, body, err := readMarkdown(args[0])
			if err != nil {
				return err
			}
			if title == "" {
				title = metaTitle
			}
			if title == "" {
				title = export.DefaultTitle
			}
			if out == "" {
				out = filepath.Join(filepath.Dir(args[0]), export.Filename(title))
			}
			if err := writeDOCXFile(out, title, body); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "document title (default: front matter title)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output .docx path")
	return cmd
}
