// Package cli implements the shippa command-line interface using cobra.
// Commands talk to the core through driving ports; adapters are wired
// once at startup in initServices.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shippa-cli/internal/adapters/driven/archive/targz"
	configfile "github.com/custodia-labs/shippa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shippa-cli/internal/adapters/driven/fsys"
	historysqlite "github.com/custodia-labs/shippa-cli/internal/adapters/driven/history/sqlite"
	"github.com/custodia-labs/shippa-cli/internal/adapters/driven/publisher/github"
	"github.com/custodia-labs/shippa-cli/internal/adapters/driven/vcs/git"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shippa-cli/internal/core/services"
	"github.com/custodia-labs/shippa-cli/internal/logger"
	"github.com/custodia-labs/shippa-cli/internal/markup"
	"github.com/custodia-labs/shippa-cli/internal/markup/markdown"
	"github.com/custodia-labs/shippa-cli/internal/markup/org"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services commands talk to. Wired in initServices, replaced by tests.
var (
	manifestService     driving.ManifestService
	notesService        driving.NotesService
	releaseOrchestrator driving.ReleaseOrchestrator
	historyService      driving.HistoryService
	bumpRewriter        *services.VersionRewriter
	bumpVCS             driven.VCS
	configStore         driven.ConfigStore
)

var (
	verbose   bool
	changeDir string
)

var rootCmd = &cobra.Command{
	Use:   "shippa",
	Short: "Package and publish project releases",
	Long: `Shippa packages a project release from a manifest of input files:
it validates the manifest, stamps the release version, renders
documentation, extracts changelog notes, builds the distributable
archive and publishes it as a GitHub release.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if changeDir != "" {
			if err := os.Chdir(changeDir); err != nil {
				return fmt.Errorf("changing directory: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&changeDir, "chdir", "C", "", "Run as if started in this directory")
}

// Execute wires the adapters and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// initServices builds the adapter stack and the core services.
// Publishing and history are optional: without a configured repository
// or a reachable data directory the remaining commands still work.
func initServices() error {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = store

	fs := fsys.New()
	renderers := markup.NewRegistry(org.New(), markdown.New())

	manifests := services.NewManifestService(fs)
	manifestService = manifests
	notesService = services.NewNotesService(fs, renderers)
	bumpRewriter = services.NewVersionRewriter(fs)
	bumpVCS = git.New("")

	var publisher driven.Publisher
	owner := store.GetString("github.owner")
	repo := store.GetString("github.repo")
	token := store.GetString("github.token")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if owner != "" && repo != "" && token != "" {
		publisher = github.NewPublisher(owner, repo, token)
	} else {
		logger.Debug("github publisher not configured, publishing disabled")
	}

	var history driven.HistoryStore
	historyStore, err := historysqlite.NewStore(store.GetString("history.dir"))
	if err != nil {
		logger.Warn("release history unavailable: %v", err)
	} else {
		history = historyStore
		historyService = services.NewHistoryService(historyStore)
	}

	releaseOrchestrator = services.NewReleaseOrchestrator(
		manifests,
		notesService,
		bumpRewriter,
		fs,
		renderers,
		targz.New(),
		publisher,
		bumpVCS,
		history,
	)

	return nil
}
