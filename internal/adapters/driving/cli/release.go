package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shippa-cli/internal/core/ports/driving"
)

var releaseCmd = &cobra.Command{
	Use:   "release <tag> [manifest-file]",
	Short: "Build and publish a release",
	Long: `Runs the full release pipeline for a tag: validates the manifest,
stages the listed files into a work directory, stamps the release
version into versioned files, renders documentation, extracts the
changelog notes, builds the tar.gz archive and publishes it as a
GitHub release.

Reads the manifest from the given file, or from stdin when the file
is omitted or "-". With --bump the versioned files in the working
tree are set to the given development version afterwards, committed
and pushed. With --dry-run the manifest is validated and the planned
work printed without staging, publishing or writing anything.

Setting publish.skip = true in the config file disables publishing by
default; the --skip-publish flag takes precedence when given.

Examples:
  shippa release v1.2.3 release-files.txt
  shippa release v1.2.3 release-files.txt --bump 1.3.0-dev
  shippa release v1.2.3 release-files.txt --skip-publish
  shippa release v1.2.3 release-files.txt --dry-run`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRelease,
}

var (
	releaseBumpValue   string
	releaseSkipPublish bool
	releaseDryRun      bool
)

func init() {
	releaseCmd.Flags().StringVar(&releaseBumpValue, "bump", "", "Post-release development version to commit")
	releaseCmd.Flags().BoolVar(&releaseSkipPublish, "skip-publish", false, "Build the archive but do not publish")
	releaseCmd.Flags().BoolVar(&releaseDryRun, "dry-run", false, "Validate and print the plan without releasing")
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	if releaseOrchestrator == nil {
		return errors.New("release service not configured")
	}

	raw, err := readManifest(args[1:])
	if err != nil {
		return err
	}

	skipPublish := releaseSkipPublish
	if !cmd.Flags().Changed("skip-publish") && configStore != nil {
		skipPublish = configStore.GetBool("publish.skip")
	}

	req := driving.ReleaseRequest{
		Tag:          args[0],
		ManifestText: raw,
		Dir:          ".",
		BumpValue:    releaseBumpValue,
		SkipPublish:  skipPublish,
	}

	if releaseDryRun {
		return runReleasePlan(cmd, req)
	}

	cmd.Printf("Releasing %s...\n", req.Tag)
	result, err := releaseOrchestrator.Run(context.Background(), req)
	if err != nil {
		return fmt.Errorf("release failed: %w", err)
	}

	cmd.Printf("Archive: %s\n", result.Release.AssetPath)
	if result.Release.URL != "" {
		cmd.Printf("Published: %s\n", result.Release.URL)
	} else {
		cmd.Println("Publishing skipped.")
	}
	if result.Bumped {
		cmd.Printf("Bumped working tree to %s\n", releaseBumpValue)
	}
	return nil
}

func runReleasePlan(cmd *cobra.Command, req driving.ReleaseRequest) error {
	plan, err := releaseOrchestrator.Plan(context.Background(), req)
	if err != nil {
		return fmt.Errorf("release plan failed: %w", err)
	}

	cmd.Printf("Plan for %s (version %s):\n", plan.Tag, plan.ReleaseVersion)
	cmd.Printf("  Files: %d (%d versioned, %d docs)\n", len(plan.Files), len(plan.Versioned), len(plan.Docs))
	if plan.Notes != "" {
		cmd.Println("  Notes: found")
	} else {
		cmd.Println("  Notes: none")
	}
	if plan.Publish {
		cmd.Println("  Publish: yes")
	} else {
		cmd.Println("  Publish: no")
	}
	if plan.Bump {
		cmd.Printf("  Bump: %s\n", req.BumpValue)
	} else {
		cmd.Println("  Bump: no")
	}
	return nil
}
