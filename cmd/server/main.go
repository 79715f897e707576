package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/gopherchat/assistant-gateway/internal/ai"
	"github.com/gopherchat/assistant-gateway/internal/channels/facebook"
	"github.com/gopherchat/assistant-gateway/internal/channels/telegram"
	"github.com/gopherchat/assistant-gateway/internal/chat"
	"github.com/gopherchat/assistant-gateway/internal/config"
	"github.com/gopherchat/assistant-gateway/internal/httpapi"
	"github.com/gopherchat/assistant-gateway/internal/httpapi/handlers"
	"github.com/gopherchat/assistant-gateway/internal/identity"
	"github.com/gopherchat/assistant-gateway/internal/prompt"
	"github.com/gopherchat/assistant-gateway/internal/retriever"
	"github.com/gopherchat/assistant-gateway/internal/store/rabbitmq"
	"github.com/gopherchat/assistant-gateway/internal/store/redisstore"
)

func newRegistry(cfg config.Config) *ai.Registry {
	reg := ai.NewRegistry()
	reg.Register(ai.ProviderLocal, func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel), nil
	})
	// "ollama" is accepted as an alias for the local backend.
	reg.Register("ollama", func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel), nil
	})
	reg.Register(ai.ProviderOpenAI, func(ctx context.Context) (ai.Provider, error) {
		return ai.NewOpenAIProvider("", cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	})
	reg.Register(ai.ProviderGemini, func(ctx context.Context) (ai.Provider, error) {
		return ai.NewGeminiProvider("", cfg.GeminiAPIKey, cfg.GeminiModel), nil
	})
	return reg
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

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
	log.Info().Msg("database tables verified")

	repo := chat.NewRepo(db)
	if err := repo.SeedCorpus(context.Background(), cfg.CorpusFile); err != nil {
		log.Warn().Err(err).Str("file", cfg.CorpusFile).Msg("context corpus not seeded")
	}

	settings := config.NewSettings(cfg.AIProvider, cfg.TelegramBotToken)
	prompts := prompt.Load(cfg.PromptFile)
	router := ai.NewRouter(newRegistry(cfg), settings, prompts)

	var publisher chat.Publisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Warn().Err(err).Msg("exchange events disabled: broker unreachable")
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	var dedup handlers.MessageDedup
	if cfg.RedisAddr != "" {
		store := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("webhook dedup disabled: redis unreachable")
		} else {
			defer store.Close()
			dedup = store
		}
	}

	svc := chat.NewService(repo, retriever.New(repo), router, publisher)
	idClient := identity.NewClient(identity.Options{
		BaseURL:   cfg.IdentityURL,
		APIKey:    cfg.IdentityAPIKey,
		JWTSecret: cfg.IdentityJWTSecret,
	}, repo)

	h := handlers.New(handlers.Deps{
		Identity:      idClient,
		Chat:          svc,
		Users:         repo,
		Settings:      settings,
		FB:            facebook.NewClient(cfg.FBPageAccessToken),
		Dedup:         dedup,
		BotStatus:     telegram.CheckToken,
		FBVerifyToken: cfg.FBVerifyToken,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewRouter(h, idClient),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("starting api server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("api server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
