package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/logger"
)

// HandleUpdate dispatches a single update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	if err := b.ports.Sessions.Touch(ctx, chatID); err != nil {
		logger.Warn("Recording activity for chat %d: %v", chatID, err)
	}

	switch {
	case len(msg.Photo) > 0:
		// Telegram lists photo sizes smallest first.
		b.handlePhoto(ctx, chatID, msg.Photo[len(msg.Photo)-1].FileID)
	case msg.Document != nil:
		b.handleDocument(ctx, chatID, msg.Document)
	case msg.Text != "":
		b.handleText(ctx, chatID, msg)
	default:
		b.reply(ctx, chatID, textUnsupported)
	}
}

func (b *Bot) handleText(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case msg.Command() == "start" || text == "/start":
		b.handleStart(ctx, chatID)
	case text == buttonShowFiles || text == buttonServerFiles:
		b.sendListing(ctx, chatID)
	default:
		b.handleSearch(ctx, chatID, msg.Text)
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	first, err := b.ports.Sessions.Greet(ctx, chatID)
	if err != nil {
		// Greeting twice is better than not at all.
		logger.Warn("Recording greeting for chat %d: %v", chatID, err)
		first = true
	}

	if !first {
		b.reply(ctx, chatID, textWelcomeBack)
		return
	}

	b.reply(ctx, chatID, textWelcome)

	keyboard := tgbotapi.NewMessage(chatID, textChooseAction)
	keyboard.ReplyMarkup = persistentKeyboard()
	b.send(ctx, keyboard)

	inline := tgbotapi.NewMessage(chatID, textInlinePrompt)
	inline.ReplyMarkup = inlineKeyboard()
	b.send(ctx, inline)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if err := b.limiter.Wait(ctx); err == nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
			b.limiter.Observe(err)
			logger.Warn("Answering callback %s: %v", query.ID, err)
		}
	}

	if query.Message == nil || query.Message.Chat == nil {
		return
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case callbackShowFiles, callbackListFiles:
		b.sendListing(ctx, chatID)
	default:
		logger.Debug("Ignoring callback data %q", query.Data)
	}
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, text string) {
	logger.Info("Chat %d searching for %q", chatID, text)

	result, err := b.ports.Retrieval.Retrieve(ctx, text)
	if err != nil {
		logger.Error("Search for chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyText)
		return
	}
	b.deliver(ctx, chatID, result)
}

func (b *Bot) handlePhoto(ctx context.Context, chatID int64, fileID string) {
	dir, err := b.workDir()
	if err != nil {
		logger.Error("Photo from chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyImage)
		return
	}
	defer os.RemoveAll(dir)

	local := filepath.Join(dir, safeName(fileID)+".jpg")
	if err := b.download(ctx, fileID, local); err != nil {
		logger.Error("Photo from chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyImage)
		return
	}

	result, err := b.ports.Retrieval.SearchImage(ctx, local)
	if err != nil {
		logger.Error("Image search for chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyImage)
		return
	}
	if result.NoText {
		b.reply(ctx, chatID, textNoText)
		return
	}
	b.deliver(ctx, chatID, result.Retrieval)
}

func (b *Bot) handleDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) {
	name := safeName(doc.FileName)
	if name == "" {
		name = safeName(doc.FileID)
	}

	dir, err := b.workDir()
	if err != nil {
		logger.Error("Document from chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyUpload)
		return
	}
	defer os.RemoveAll(dir)

	local := filepath.Join(dir, name)
	if err := b.download(ctx, doc.FileID, local); err != nil {
		logger.Error("Document from chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyUpload)
		return
	}

	result, err := b.ports.Archive.Upload(ctx, local, name)
	if err != nil {
		logger.Error("Upload from chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyUpload)
		return
	}

	switch result.Status {
	case domain.UploadVerified:
		b.reply(ctx, chatID, fmt.Sprintf(textUploadWarning, name, result.TransferErr))
	default:
		b.reply(ctx, chatID, fmt.Sprintf(textUploaded, name))
	}
}

func (b *Bot) sendListing(ctx context.Context, chatID int64) {
	listing, err := b.ports.Archive.ListFiles(ctx)
	if err != nil {
		logger.Error("Listing for chat %d: %v", chatID, err)
		b.reply(ctx, chatID, apologyListing)
		return
	}
	b.reply(ctx, chatID, formatListing(listing))
}

// deliver sends every matched document, or a no-match notice.
func (b *Bot) deliver(ctx context.Context, chatID int64, result *domain.RetrievalResult) {
	if result == nil || result.Matches.Len() == 0 {
		b.reply(ctx, chatID, textNoMatches)
		return
	}

	for _, id := range result.Matches.Sorted() {
		if err := b.sendDocument(ctx, chatID, id); err != nil {
			logger.Error("Sending %s to chat %d: %v", id, chatID, err)
			b.reply(ctx, chatID, fmt.Sprintf(apologyDelivery, id.Name()))
		}
	}
}

// sendDocument fetches id and sends it as an attachment.
// The local copy is removed afterwards.
func (b *Bot) sendDocument(ctx context.Context, chatID int64, id domain.DocumentID) error {
	dir, err := b.workDir()
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	local, err := b.ports.Archive.Fetch(ctx, id, dir)
	if err != nil {
		return err
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := b.api.Send(tgbotapi.NewDocument(chatID, tgbotapi.FilePath(local))); err != nil {
		b.limiter.Observe(err)
		return fmt.Errorf("sending document: %w", err)
	}
	logger.Info("Sent %s to chat %d", id, chatID)
	return nil
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if err := b.limiter.Wait(ctx); err != nil {
		logger.Warn("Rate limiter: %v", err)
		return
	}
	if _, err := b.api.Send(c); err != nil {
		b.limiter.Observe(err)
		logger.Error("Sending message: %v", err)
	}
}

func (b *Bot) workDir() (string, error) {
	if b.cfg.TempDir != "" {
		if err := os.MkdirAll(b.cfg.TempDir, 0700); err != nil {
			return "", fmt.Errorf("creating temp directory: %w", err)
		}
	}
	dir, err := os.MkdirTemp(b.cfg.TempDir, "docseek-bot-")
	if err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}
	return dir, nil
}

func formatListing(listing []domain.DocumentID) string {
	if len(listing) == 0 {
		return textNoFiles
	}
	names := make([]string, len(listing))
	for i, id := range listing {
		names[i] = id.String()
	}
	return textFilesHeader + "\n\n" + strings.Join(names, "\n")
}

// safeName reduces a client supplied file name to a single path element.
func safeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
