package cli

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docentia/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			values := cfg.Values()
			w := cmd.OutOrStdout()
			for _, o := range config.GetConfigOptions() {
				val := values[o.Key]
				if config.IsSecret(o.Key) && val != "" {
					val = mask(val)
				}
				_, _ = fmt.Fprintf(w, "# %s\n%s = %q\n", o.Comment, o.Key, val)
			}
			if err := cfg.Validate(); err != nil {
				_, _ = fmt.Fprintf(w, "\n# invalid: %v\n", err)
			}
			return nil
		},
	}
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
