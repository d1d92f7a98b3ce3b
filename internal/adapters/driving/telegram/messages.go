package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reply texts.
const (
	textWelcome       = "Hi! Send me a photo, a document or some text to search for."
	textWelcomeBack   = "Welcome back! The keyboard is already active."
	textChooseAction  = "Choose an action:"
	textInlinePrompt  = "Use the buttons below to work with files:"
	textUnsupported   = "Please send a photo, a file or some text."
	textNoMatches     = "No matches found."
	textNoText        = "Please send a photo of the document."
	textFilesHeader   = "Files on server:"
	textNoFiles       = "There are no files on the server."
	textUploaded      = "✅ File %s uploaded to the server."
	textUploadWarning = "⚠ File %s uploaded, but the server reported an error:\n%v"
)

// One apology per operation kind. Details stay in the log.
const (
	apologyText     = "Something went wrong while processing your text."
	apologyImage    = "Something went wrong while processing your photo."
	apologyListing  = "Something went wrong while getting the file list."
	apologyUpload   = "❌ Something went wrong while uploading the file to the server."
	apologyDelivery = "Could not send %s."
)

// Keyboard labels and callback data.
const (
	buttonShowFiles   = "📂 Show all files"
	buttonServerFiles = "🗂 Files on server"
	inlineShowFiles   = "📂 Show file list"

	callbackShowFiles = "show_files"
	callbackListFiles = "list_files"
)

func persistentKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonShowFiles),
			tgbotapi.NewKeyboardButton(buttonServerFiles),
		),
	)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = false
	return keyboard
}

func inlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(inlineShowFiles, callbackShowFiles)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(buttonServerFiles, callbackListFiles)),
	)
}
