package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var bumpCmd = &cobra.Command{
	Use:   "bump <value> [manifest-file]",
	Short: "Set the development version in versioned files",
	Long: `Rewrites the version assignment line in every file the manifest
marks with the v flag, then commits and pushes the change unless
--no-commit is given.

Reads the manifest from the given file, or from stdin when the file
is omitted or "-".

Examples:
  shippa bump 1.3.0-dev release-files.txt
  shippa bump 1.3.0-dev release-files.txt --no-commit`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBump,
}

var bumpNoCommit bool

func init() {
	bumpCmd.Flags().BoolVar(&bumpNoCommit, "no-commit", false, "Rewrite files without committing")
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	if manifestService == nil || bumpRewriter == nil {
		return errors.New("bump service not configured")
	}

	value := args[0]
	raw, err := readManifest(args[1:])
	if err != nil {
		return err
	}

	ctx := context.Background()
	manifest, err := manifestService.Build(ctx, raw, value)
	if err != nil {
		return fmt.Errorf("manifest invalid: %w", err)
	}
	if err := manifestService.Check(ctx, manifest); err != nil {
		return fmt.Errorf("manifest invalid: %w", err)
	}

	if len(manifest.Versioned) == 0 {
		return errors.New("manifest marks no files as versioned")
	}

	if err := bumpRewriter.Rewrite(ctx, manifest.Versioned, value); err != nil {
		return fmt.Errorf("bump failed: %w", err)
	}
	cmd.Printf("Set version to %s in %d file(s)\n", value, len(manifest.Versioned))

	if bumpNoCommit {
		return nil
	}
	if bumpVCS == nil {
		return errors.New("version control not configured")
	}

	message := fmt.Sprintf("Bump version to %s", value)
	if err := bumpVCS.CommitAll(ctx, manifest.Versioned, message); err != nil {
		return fmt.Errorf("committing version bump: %w", err)
	}
	if err := bumpVCS.Push(ctx); err != nil {
		return fmt.Errorf("pushing version bump: %w", err)
	}
	cmd.Println("Committed and pushed.")
	return nil
}
