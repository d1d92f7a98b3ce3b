// Package telegram runs docseek as a Telegram chat bot.
//
// The bot long-polls for updates and answers text with matching archive
// documents, photos with the documents matching their recognised text,
// and stores received documents in the archive. Per-chat state and the
// update cursor live behind driving.SessionService.
package telegram
