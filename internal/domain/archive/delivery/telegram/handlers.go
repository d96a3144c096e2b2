// Package telegram contains the Telegram bot delivery layer
package telegram

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/export"
	"github.com/niknikgle/EyeOfSauron-Telegram/internal/domain/archive/usecase/business"
)

const welcomeText = "Welcome! Use /scrape <channel> to scrape a channel, or /search <nickname> to search messages."

// Handlers contains Telegram command handlers
type Handlers struct {
	uc     *business.UseCase
	logger zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *business.UseCase, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		logger: logger.With().Str("component", "telegram_handlers").Logger(),
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	h.sendResponse(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleScrape handles /scrape command
func (h *Handlers) HandleScrape(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 2 {
		h.sendResponse(ctx, b, chatID, "Usage: /scrape <channel_username>")
		return
	}
	channel := args[1]

	h.logger.Info().
		Str("channel", channel).
		Str("requested_by", update.Message.From.Username).
		Msg("Scrape requested")

	h.sendResponse(ctx, b, chatID, fmt.Sprintf("Scraping channel: %s. This may take a while.", channel))

	summary, err := h.uc.Scrape(ctx, channel)
	if err != nil {
		h.logger.Error().Err(err).Str("channel", channel).Msg("Scrape failed")
		h.sendResponse(ctx, b, chatID, fmt.Sprintf("Error: %s", err))
		return
	}

	// Covers both an empty channel and a cooldown rejection; the two are
	// indistinguishable by design.
	if summary.Messages == 0 {
		h.sendResponse(ctx, b, chatID,
			"No messages found in this channel. This could be because it was scraped less than 24 hours ago or its empty.")
		return
	}

	h.sendResponse(ctx, b, chatID,
		fmt.Sprintf("Scraped %d messages from %s in %d seconds.", summary.Messages, summary.Channel, summary.Elapsed))
}

// HandleSearch handles /search command
func (h *Handlers) HandleSearch(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 2 {
		h.sendResponse(ctx, b, chatID, "Usage: /search <nickname>")
		return
	}
	nickname := args[1]

	result, err := h.uc.SearchNickname(ctx, nickname)
	if err != nil {
		h.logger.Error().Err(err).Str("nickname", nickname).Msg("Search failed")
		h.sendResponse(ctx, b, chatID, fmt.Sprintf("Error: %s", err))
		return
	}

	if len(result.Messages) == 0 {
		h.sendResponse(ctx, b, chatID, "No messages found for this nickname.")
		return
	}

	doc := export.Document(result.UserID, result.Nicknames, result.Messages)

	// The document is built and sent in memory; nothing touches disk
	_, err = b.SendDocument(ctx, &tgbot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: export.Filename(nickname),
			Data:     strings.NewReader(doc),
		},
	})
	if err != nil {
		h.logger.Error().Err(err).Str("nickname", nickname).Msg("Failed to send export document")
		h.sendResponse(ctx, b, chatID, "Error: failed to deliver export document")
	}
}

// HandleInlineQuery answers inline queries with a message count for a nickname
func (h *Handlers) HandleInlineQuery(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	query := strings.TrimSpace(update.InlineQuery.Query)

	if query == "" {
		h.answerInline(ctx, b, update.InlineQuery.ID, nil)
		return
	}

	nickname := strings.TrimPrefix(strings.Fields(query)[0], "@")

	result, err := h.uc.SearchNickname(ctx, nickname)
	if err != nil {
		h.logger.Error().Err(err).Str("nickname", nickname).Msg("Inline query search failed")
		h.answerInline(ctx, b, update.InlineQuery.ID, nil)
		return
	}

	var article *models.InlineQueryResultArticle
	if len(result.Messages) == 0 {
		article = &models.InlineQueryResultArticle{
			ID:    inlineResultID("noresult", nickname),
			Title: "No messages found",
			InputMessageContent: &models.InputTextMessageContent{
				MessageText: fmt.Sprintf("No messages found for %s.", nickname),
			},
		}
	} else {
		article = &models.InlineQueryResultArticle{
			ID:    inlineResultID("count", nickname),
			Title: fmt.Sprintf("%s has %d messages", nickname, len(result.Messages)),
			InputMessageContent: &models.InputTextMessageContent{
				MessageText: fmt.Sprintf("User @%s has %d messages in the database.", nickname, len(result.Messages)),
			},
		}
	}

	h.answerInline(ctx, b, update.InlineQuery.ID, []models.InlineQueryResult{article})
}

func (h *Handlers) answerInline(ctx context.Context, b *tgbot.Bot, queryID string, results []models.InlineQueryResult) {
	if results == nil {
		results = []models.InlineQueryResult{}
	}

	_, err := b.AnswerInlineQuery(ctx, &tgbot.AnswerInlineQueryParams{
		InlineQueryID: queryID,
		Results:       results,
		CacheTime:     1,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer inline query")
	}
}

func (h *Handlers) sendResponse(ctx context.Context, b *tgbot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// inlineResultID derives a stable inline result id from the answer kind and nickname
func inlineResultID(kind, nickname string) string {
	sum := md5.Sum([]byte(kind + nickname))
	return hex.EncodeToString(sum[:])
}
