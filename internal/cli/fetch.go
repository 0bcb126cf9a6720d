package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/pinterest-downloader/internal/config"
	"github.com/ignatzorin/pinterest-downloader/internal/downloader"
	"github.com/ignatzorin/pinterest-downloader/internal/normalize"
	"github.com/ignatzorin/pinterest-downloader/internal/service"
	"github.com/ignatzorin/pinterest-downloader/internal/validation"
)

func newFetchCommand() *cobra.Command {
	var (
		flagBaseURL string
		flagTimeout time.Duration
		flagCompact bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Resolve a pin link to its media URL",
		Long: `Fetch validates the link, calls the downloader service once and prints
the normalized result as JSON.

Examples:
  pinctl fetch https://pin.it/abc123
  pinctl fetch https://www.pinterest.com/pin/123456789/ --timeout 20s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.DownloaderFromEnv()
			if err != nil {
				return err
			}
			if flagBaseURL != "" {
				cfg.DownloaderBaseURL = flagBaseURL
			}
			if flagTimeout > 0 {
				cfg.DownloaderTimeout = flagTimeout
			}

			client := downloader.NewClient(
				cfg.DownloaderBaseURL,
				cfg.DownloaderTimeout,
				cfg.DownloaderUserAgent,
				downloader.WithMaxBodyBytes(cfg.DownloaderMaxBodyMB*1024*1024),
			)
			downloads := service.NewDownloadService(validation.NewPinValidator(validation.DefaultRules()), client, normalize.New())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			result, err := downloads.Download(ctx, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !flagCompact {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("fetch: не удалось вывести результат: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Downloader service URL (default: DOWNLOADER_BASE_URL)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Upstream timeout (default: DOWNLOADER_TIMEOUT)")
	cmd.Flags().BoolVar(&flagCompact, "compact", false, "Print JSON on a single line")

	return cmd
}
