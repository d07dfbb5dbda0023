package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes <tag>",
	Short: "Extract release notes for a tag",
	Long: `Extracts the changelog section for a tag and prints it as
GitHub-flavoured Markdown.

Looks for CHANGELOG.org first, then CHANGELOG.md, in the current
directory (or the directory given with --dir). The section printed is
the body between the first top-level heading containing the tag and
the next top-level heading.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotes,
}

var notesDir string

func init() {
	notesCmd.Flags().StringVar(&notesDir, "dir", ".", "Directory containing the changelog")
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	if notesService == nil {
		return errors.New("notes service not configured")
	}

	tag := args[0]
	notes, err := notesService.Extract(context.Background(), notesDir, tag)
	if err != nil {
		return fmt.Errorf("extracting notes: %w", err)
	}

	if notes == "" {
		return fmt.Errorf("no release notes found for %s", tag)
	}

	cmd.Print(notes)
	return nil
}
