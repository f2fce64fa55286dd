package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docentia/internal/llm"
	"github.com/dgallion1/docentia/internal/pipeline"
	"github.com/dgallion1/docentia/internal/requests"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var docxOut string
	cmd := &cobra.Command{
		Use:   "generate <kind> <request.json>",
		Short: "Generate one document and print its Markdown",
		Long:  "Generate one document. Use - as the request file to read JSON from stdin.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			kind, err := requests.ParseKind(args[0])
			if err != nil {
				return err
			}
			var in io.Reader = cmd.InOrStdin()
			if args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			req, err := requests.Decode(kind, in)
			if err != nil {
				return fmt.Errorf("invalid request: %s", requests.Describe(err))
			}

			dispatcher, err := llm.NewDispatcher(cfg, log)
			if err != nil {
				return err
			}
			defer dispatcher.Close()

			gen, err := pipeline.NewGenerator(dispatcher, cfg, log).Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), gen.Data.Content)

			if docxOut != "" {
				if err := writeDOCXFile(docxOut, gen.Title, gen.Data.Content); err != nil {
					return err
				}
				log.Info("docx written", "path", docxOut, "title", gen.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&docxOut, "docx", "", "also export the result to this .docx path")
	return cmd
}
