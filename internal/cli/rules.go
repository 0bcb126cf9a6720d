package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/pinterest-downloader/internal/validation"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the link recognition rules as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(validation.DefaultRules())
		},
	}
}
