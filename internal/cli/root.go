// Package cli реализует консольную утилиту pinctl поверх тех же сервисов, что и HTTP API.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand собирает дерево команд pinctl.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pinctl",
		Short: "pinctl - check and resolve Pinterest pin links",
		Long: `pinctl checks Pinterest pin links and resolves them to direct media URLs
using the same validator and downloader service as the HTTP API.

Usage:
  pinctl check <url>
  pinctl fetch <url> [flags]
  pinctl rules`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCommand(), newFetchCommand(), newRulesCommand())
	return root
}
