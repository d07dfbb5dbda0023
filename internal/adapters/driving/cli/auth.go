package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure the GitHub repository and token",
	Long: `Stores the GitHub repository and personal access token used for
publishing releases.

The token needs the repo scope (contents: write for fine-grained
tokens). It is stored in the shippa config file with restricted
permissions; the GITHUB_TOKEN environment variable takes effect when
no token is stored.

Examples:
  shippa auth set --owner custodia-labs --repo shippa-cli   # prompts for token
  shippa auth show`,
	RunE: runAuthShow,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the publishing repository and token",
	RunE:  runAuthSet,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current publishing configuration",
	RunE:  runAuthShow,
}

// Flags for auth set.
var (
	authSetOwner string
	authSetRepo  string
	authSetToken string
)

func init() {
	authSetCmd.Flags().StringVar(&authSetOwner, "owner", "", "Repository owner (user or organisation)")
	authSetCmd.Flags().StringVar(&authSetRepo, "repo", "", "Repository name")
	authSetCmd.Flags().StringVar(&authSetToken, "token", "", "Personal access token (prompted when omitted)")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	owner := authSetOwner
	if owner == "" {
		cmd.Print("Repository owner: ")
		owner = readLine(reader)
	}
	if owner == "" {
		return errors.New("repository owner is required")
	}

	repo := authSetRepo
	if repo == "" {
		cmd.Print("Repository name: ")
		repo = readLine(reader)
	}
	if repo == "" {
		return errors.New("repository name is required")
	}

	token := authSetToken
	if token == "" {
		cmd.Print("Personal access token (leave empty to use GITHUB_TOKEN): ")
		token = readPassword()
		cmd.Println()
	}

	configStore.Set("github.owner", owner)
	configStore.Set("github.repo", repo)
	if token != "" {
		configStore.Set("github.token", token)
	}
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	cmd.Printf("Publishing configured for %s/%s\n", owner, repo)
	return nil
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	owner := configStore.GetString("github.owner")
	repo := configStore.GetString("github.repo")
	token := configStore.GetString("github.token")

	if owner == "" && repo == "" {
		cmd.Println("Publishing is not configured.")
		cmd.Println("Run 'shippa auth set' to configure.")
		return nil
	}

	cmd.Printf("Repository: %s/%s\n", owner, repo)
	if token != "" {
		cmd.Printf("Token: %s\n", maskToken(token))
	} else if os.Getenv("GITHUB_TOKEN") != "" {
		cmd.Println("Token: (from GITHUB_TOKEN)")
	} else {
		cmd.Println("Token: (not set)")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
