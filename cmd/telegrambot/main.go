package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/gopherchat/assistant-gateway/internal/ai"
	"github.com/gopherchat/assistant-gateway/internal/channels/telegram"
	"github.com/gopherchat/assistant-gateway/internal/chat"
	"github.com/gopherchat/assistant-gateway/internal/config"
	"github.com/gopherchat/assistant-gateway/internal/prompt"
	"github.com/gopherchat/assistant-gateway/internal/retriever"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN not found in environment variables")
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := db.AutoMigrate(
		&chat.User{}, &chat.Session{}, &chat.Turn{},
		&chat.Document{}, &chat.DocumentChunk{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	repo := chat.NewRepo(db)
	settings := config.NewSettings(cfg.AIProvider, cfg.TelegramBotToken)
	prompts := prompt.Load(cfg.PromptFile)

	reg := ai.NewRegistry()
	reg.Register(ai.ProviderLocal, func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel), nil
	})
	reg.Register("ollama", func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel), nil
	})
	reg.Register(ai.ProviderOpenAI, func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOpenAIProvider("", cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	})
	reg.Register(ai.ProviderGemini, func(ctx context.Context) (ai.Provider, error) {
		return ai.NewGeminiProvider("", cfg.GeminiAPIKey, cfg.GeminiModel), nil
	})

	svc := chat.NewService(repo, retriever.New(repo), ai.NewRouter(reg, settings, prompts), nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if ok, status := telegram.CheckToken(ctx, cfg.TelegramBotToken); !ok {
		log.Fatal().Str("status", status).Msg("telegram bot token rejected")
	} else {
		log.Info().Str("status", status).Msg("telegram bot token verified")
	}

	if err := telegram.NewAdapter(svc, repo).Run(ctx, cfg.TelegramBotToken); err != nil {
		log.Fatal().Err(err).Msg("telegram bot failed")
	}
	log.Info().Msg("telegram bot stopped")
}
