// Package cli provides the docseek command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docseek/internal/core/ports/driving"
	"github.com/custodia-labs/docseek/internal/logger"
)

// version is set at build time.
var version = "dev"

// Driving ports used by the commands. Populated by Bootstrap before a command runs.
var (
	retrievalService driving.RetrievalService
	archiveService   driving.ArchiveService
	sessionService   driving.SessionService
	settingsService  driving.SettingsService
	configPath       string
)

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services holds the driving ports a Bootstrap function builds.
type Services struct {
	Retrieval  driving.RetrievalService
	Archive    driving.ArchiveService
	Sessions   driving.SessionService
	Settings   driving.SettingsService
	ConfigPath string

	// Close releases resources such as the session database. Optional.
	Close func() error
}

// Bootstrap builds services from the configuration directory.
// An empty configDir means the default location.
type Bootstrap func(configDir string) (*Services, error)

var (
	bootstrap      Bootstrap
	closeResources func() error
)

var rootCmd = &cobra.Command{
	Use:   "docseek",
	Short: "Find documents in a file archive",
	Long: `docseek searches a remote file archive by file name and document content.

Plain text, Word (.docx) and PDF documents are downloaded and searched on
every query. Photos of documents are searched by their recognised text.
The same search is available as a chat bot, an MCP server and a terminal UI.`,
	SilenceUsage:       true,
	PersistentPreRunE:  runBootstrap,
	PersistentPostRunE: runCleanup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docseek)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services before each command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	svcs, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	if svcs == nil {
		return errors.New("initialising: no services")
	}

	retrievalService = svcs.Retrieval
	archiveService = svcs.Archive
	sessionService = svcs.Sessions
	settingsService = svcs.Settings
	configPath = svcs.ConfigPath
	closeResources = svcs.Close
	return nil
}

func runCleanup(_ *cobra.Command, _ []string) error {
	if closeResources == nil {
		return nil
	}
	err := closeResources()
	closeResources = nil
	return err
}
