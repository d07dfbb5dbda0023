package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [tag]",
	Short: "Show recorded releases",
	Long: `Shows releases recorded by previous runs, newest first.
With a tag argument, shows the full record for that tag including the
published notes.

The default list length can be set with history.limit in the config
file; --limit takes precedence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of releases to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		tag := args[0]
		release, err := historyService.Get(ctx, tag)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if release == nil {
			return fmt.Errorf("no recorded release for %s", tag)
		}

		cmd.Printf("Tag: %s\n", release.Tag)
		cmd.Printf("Published: %s\n", release.PublishedAt.Format(time.RFC3339))
		cmd.Printf("Archive: %s\n", release.AssetPath)
		if release.URL != "" {
			cmd.Printf("URL: %s\n", release.URL)
		}
		if release.Notes != "" {
			cmd.Println("\nNotes:")
			cmd.Println(release.Notes)
		}
		return nil
	}

	limit := historyLimit
	if !cmd.Flags().Changed("limit") && configStore != nil {
		if n := configStore.GetInt("history.limit"); n > 0 {
			limit = n
		}
	}

	releases, err := historyService.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(releases) == 0 {
		cmd.Println("No recorded releases.")
		return nil
	}

	for i := range releases {
		cmd.Printf("%s  %s  %s\n",
			releases[i].PublishedAt.Format("2006-01-02 15:04"),
			releases[i].Tag,
			releases[i].URL)
	}
	return nil
}
