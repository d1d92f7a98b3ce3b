package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docseek/internal/adapters/driving/telegram"
	"github.com/custodia-labs/docseek/internal/logger"
)

// newBotAPI is replaced in tests.
var newBotAPI = telegram.NewAPI

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Runs docseek as a Telegram bot until interrupted.

The bot token is read from bot.token (or DOCSEEK_BOT_TOKEN). Send the bot
text to search, a photo of a document to search by its text, or a file to
store it in the archive.`,
	Args: cobra.NoArgs,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil || archiveService == nil || sessionService == nil {
		return errors.New("services not configured")
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	api, err := newBotAPI(settings.Bot.Token)
	if err != nil {
		return err
	}

	bot, err := telegram.New(api, &telegram.Ports{
		Retrieval: retrievalService,
		Archive:   archiveService,
		Sessions:  sessionService,
	}, telegram.Config{
		PollInterval: settings.Bot.PollInterval,
		ErrorBackoff: settings.Bot.ErrorBackoff,
		RateLimit:    settings.Bot.RateLimit,
		TempDir:      settings.CacheDir,
	})
	if err != nil {
		return err
	}

	if !verbose {
		logger.SetLevel(logger.LevelInfo)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("Bot is running, press Ctrl+C to stop")
	return bot.Run(ctx)
}
