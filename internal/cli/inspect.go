package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/docentia/internal/export"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "inspect <file.docx>",
		Short: "Print the paragraphs of a Word document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			st, err := f.Stat()
			if err != nil {
				return err
			}
			paras, err := export.ReadDOCX(f, st.Size())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, p := range paras {
				if !verbose {
					_, _ = fmt.Fprintln(w, p.Text)
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", formatFlags(p), p.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show bold, alignment, size and color")
	return cmd
}

func formatFlags(p export.Paragraph) string {
	var flags []string
	if p.Bold {
		flags = append(flags, "bold")
	}
	if p.Centered {
		flags = append(flags, "center")
	}
	if p.SizeHalfs != "" {
		flags = append(flags, "sz="+p.SizeHalfs)
	}
	if p.Color != "" {
		flags = append(flags, "color="+p.Color)
	}
	if len(flags) == 0 {
		return "-"
	}
	return "[" + strings.Join(flags, ",") + "]"
}
