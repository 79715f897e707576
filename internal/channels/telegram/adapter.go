// Package telegram runs the Telegram side of the gateway: a long-poll
// adapter feeding the chat pipeline, and the token status check used by
// the settings endpoints.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/gopherchat/assistant-gateway/internal/chat"
)

const welcomeText = "Welcome to your AI Assistant! I am now powered by multiple AI providers (Gemini, OpenAI, or Local). Feel free to ask me anything."

// Pipeline is the gateway entry point the adapter feeds.
type Pipeline interface {
	HandleChatTurn(ctx context.Context, user *chat.User, rawText string) (string, error)
}

// UserMirror resolves channel senders to local identities.
type UserMirror interface {
	MirrorUser(ctx context.Context, id, email string) (*chat.User, error)
}

type Adapter struct {
	pipeline Pipeline
	users    UserMirror
}

func NewAdapter(pipeline Pipeline, users UserMirror) *Adapter {
	return &Adapter{pipeline: pipeline, users: users}
}

// Run long-polls updates until ctx is canceled.
func (a *Adapter) Run(ctx context.Context, token string) error {
	b, err := bot.New(token, bot.WithDefaultHandler(a.handleMessage))
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, a.handleWelcome)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, a.handleWelcome)

	log.Info().Msg("starting telegram bot")
	b.Start(ctx)
	return nil
}

func (a *Adapter) handleWelcome(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
	if err != nil {
		log.Error().Err(err).Msg("telegram welcome reply failed")
	}
}

func (a *Adapter) handleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	_, _ = b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})

	log.Info().Int64("chat_id", chatID).Msg("telegram message received")

	user, err := a.users.MirrorUser(ctx,
		fmt.Sprintf("tg-%d", chatID),
		fmt.Sprintf("tg-%d@telegram.local", chatID))
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("telegram identity mirror failed")
		return
	}

	reply, err := a.pipeline.HandleChatTurn(ctx, user, text)
	if err != nil {
		// The exchange was not recorded, so the generated answer is not delivered.
		reply = "Error: failed to record this conversation. Please try again."
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: reply}); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("telegram reply failed")
	}
}

// CheckToken validates a bot credential with a bounded getMe call.
func CheckToken(ctx context.Context, token string) (ok bool, status string) {
	if token == "" {
		return false, "Token is missing"
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return false, "Connection Error: " + err.Error()
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "Unauthorized") {
			return false, "Invalid Token"
		}
		return false, "Connection Error: " + err.Error()
	}
	return true, fmt.Sprintf("Online (@%s)", me.Username)
}
