package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
	"github.com/ignatzorin/pinterest-downloader/internal/validation"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>",
		Short: "Check whether a URL is a Pinterest pin link",
		Long: `Check classifies the URL without calling the downloader service.

Examples:
  pinctl check https://www.pinterest.com/pin/123456789/
  pinctl check https://pin.it/abc123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validator := validation.NewPinValidator(validation.DefaultRules())

			ref, ok := validator.Classify(args[0])
			if !ok {
				return apperror.ErrInvalidURL
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind: %s\n", ref.Kind)
			fmt.Fprintf(out, "id:   %s\n", ref.ID)
			fmt.Fprintf(out, "host: %s\n", ref.Host)
			return nil
		},
	}
}
