package cli

import (
	"encoding/json"
	"fmt"

	"textprep/internal/core/locale"
	"textprep/internal/core/version"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bi := version.Info("textprep")
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(bi)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s, %s)\n", bi.Service, bi.Version, bi.Commit, bi.Date, bi.GoVersion)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func localesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the embedded language packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, code := range locale.Available() {
				l, err := locale.Load(code)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d abbreviations\n",
					l.Code, l.Name, len(l.Abbreviations)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
