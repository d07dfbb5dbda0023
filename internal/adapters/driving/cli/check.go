package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [manifest-file]",
	Short: "Validate a release manifest",
	Long: `Parses the manifest of input files and validates it without
releasing anything: every listed file must exist, documentation files
must be .org or .md with distinct stems and non-colliding outputs, the
toc flag requires the doc flag, and versioned files must contain a
version assignment line.

Reads the manifest from the given file, or from stdin when the file is
omitted or "-".

Manifest lines name one file each, with optional "+"-delimited flags:
  README.org + doc + toc
  VERSION    + v
  LICENSE`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var checkBumpValue string

func init() {
	checkCmd.Flags().StringVar(&checkBumpValue, "bump", "", "Post-release version value to validate")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if manifestService == nil {
		return errors.New("manifest service not configured")
	}

	raw, err := readManifest(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	manifest, err := manifestService.Build(ctx, raw, checkBumpValue)
	if err != nil {
		return fmt.Errorf("manifest invalid: %w", err)
	}
	if err := manifestService.Check(ctx, manifest); err != nil {
		return fmt.Errorf("manifest invalid: %w", err)
	}

	cmd.Printf("Manifest OK: %d file(s), %d versioned, %d doc(s)\n",
		len(manifest.Files), len(manifest.Versioned), len(manifest.Docs))
	return nil
}

// readManifest reads the manifest text from the named file or stdin.
func readManifest(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading manifest from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading manifest: %w", err)
	}
	return string(data), nil
}
