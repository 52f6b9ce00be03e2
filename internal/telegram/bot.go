package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const pollTimeout = 60

// Bot connects a Handler to the Telegram Bot API.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	wg      sync.WaitGroup
	logger  zerolog.Logger
}

// NewBot authorizes with the bot token.
func NewBot(token string, handler *Handler) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:     api,
		handler: handler,
		logger:  log.With().Str("component", "telegram_bot").Logger(),
	}
	b.logger.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")
	return b, nil
}

// Run polls for updates until ctx is done, then waits for in-flight
// replies to finish.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	defer b.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.dispatch(ctx, update)
			}()
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	b.logger.Debug().Int64("chat_id", chatID).Str("text", message.Text).Msg("Message received")

	if !NeedsAssistant(message.Text) {
		b.send(chatID, b.handler.HandleText(ctx, chatID, message.Text))
		return
	}

	// Assistant calls take a while; show progress and replace it.
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, "🤖 Thinking..."))
	reply := b.handler.HandleText(ctx, chatID, message.Text)
	if err != nil || len(reply.Text) > MaxMessageLength || len(reply.Buttons) > 0 {
		if err == nil {
			b.api.Request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID))
		}
		b.send(chatID, reply)
		return
	}
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, sent.MessageID, reply.Text)); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to edit message")
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Acknowledge the callback query
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to acknowledge callback")
	}
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	b.send(chatID, b.handler.HandleCallback(ctx, chatID, callback.Data))
}

func (b *Bot) send(chatID int64, reply Reply) {
	chunks := SplitMessage(reply.Text, MaxMessageLength)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if i == len(chunks)-1 {
			switch {
			case len(reply.Buttons) > 0:
				msg.ReplyMarkup = inlineKeyboard(reply.Buttons)
			case reply.MainMenu:
				msg.ReplyMarkup = mainMenuKeyboard()
			}
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
			return
		}
	}
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonUS),
			tgbotapi.NewKeyboardButton(buttonIndia),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonPicks),
			tgbotapi.NewKeyboardButton(buttonVault),
		),
	)
}

func inlineKeyboard(buttons []Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, btn := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// broadcastDelay keeps broadcasts under Telegram's 30 messages per second.
const broadcastDelay = 50 * time.Millisecond

// Broadcast sends text to every chat and returns how many deliveries
// succeeded.
func (b *Bot) Broadcast(ctx context.Context, chatIDs []int64, text string) int {
	sent := 0
	for i, chatID := range chatIDs {
		if ctx.Err() != nil {
			break
		}
		ok := true
		for _, chunk := range SplitMessage(text, MaxMessageLength) {
			if _, err := b.api.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
				b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send broadcast")
				ok = false
				break
			}
		}
		if ok {
			sent++
		}
		if i < len(chatIDs)-1 {
			time.Sleep(broadcastDelay)
		}
	}
	b.logger.Info().
		Int("total", len(chatIDs)).
		Int("sent", sent).
		Int("failed", len(chatIDs)-sent).
		Msg("Broadcast completed")
	return sent
}
