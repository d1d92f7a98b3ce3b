package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change docseek settings.

Settings are stored in config.toml in the configuration directory.
Every setting can be overridden by an environment variable named after
its key, e.g. archive.host is overridden by DOCSEEK_ARCHIVE_HOST.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetSecretCmd = &cobra.Command{
	Use:   "set-secret [key]",
	Short: "Set a setting without echoing the value",
	Long:  `Prompts for a value such as archive.password or bot.token without echoing it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetSecret,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(configPath)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetSecretCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[Archive]")
	cmd.Printf("  Backend: %s\n", settings.Archive.Backend.Description())
	if settings.Archive.Backend == domain.ArchiveBackendFilesystem {
		cmd.Printf("  Root: %s\n", orNotSet(settings.Archive.Root))
	} else {
		cmd.Printf("  Host: %s\n", orNotSet(settings.Archive.Host))
		cmd.Printf("  Port: %d\n", settings.Archive.Port)
		cmd.Printf("  User: %s\n", orNotSet(settings.Archive.User))
		cmd.Printf("  Password: %s\n", maskSecret(settings.Archive.Password))
		cmd.Printf("  Timeout: %s\n", settings.Archive.Timeout)
	}
	cmd.Printf("  Directory: %s\n", settings.Archive.Directory)
	cmd.Println()

	cmd.Println("[OCR]")
	cmd.Printf("  Binary: %s\n", settings.OCR.Binary)
	cmd.Printf("  Languages: %s\n", strings.Join(settings.OCR.Languages, "+"))
	cmd.Println()

	cmd.Println("[Bot]")
	cmd.Printf("  Token: %s\n", maskSecret(settings.Bot.Token))
	cmd.Printf("  Poll interval: %s\n", settings.Bot.PollInterval)
	cmd.Printf("  Error backoff: %s\n", settings.Bot.ErrorBackoff)
	cmd.Printf("  Rate limit: %g/s\n", settings.Bot.RateLimit)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	cmd.Printf("  Cache directory: %s\n", orDefault(settings.CacheDir, "system temp"))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigSetSecret(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Printf("%s: ", args[0])
	value := readPassword()
	cmd.Println()
	if value == "" {
		return errors.New("no value entered")
	}

	if err := settingsService.Set(args[0], value); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

// readPassword reads a line from stdin without echo when stdin is a terminal.
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(secret string) string {
	switch {
	case secret == "":
		return "(not set)"
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "..." + secret[len(secret)-4:]
	}
}

func orNotSet(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
