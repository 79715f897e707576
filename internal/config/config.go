package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr string
	DBDSN      string

	// Identity provider (Supabase-compatible). When IdentityURL is empty
	// the gateway falls back to local credential storage.
	IdentityURL       string
	IdentityAPIKey    string
	IdentityJWTSecret string

	// AI providers
	AIProvider  string
	OllamaURL   string
	OllamaModel string

	OpenAIAPIKey string
	OpenAIModel  string

	GeminiAPIKey string
	GeminiModel  string

	// Channel credentials
	TelegramBotToken  string
	FBPageAccessToken string
	FBVerifyToken     string

	// Operator prompt override and context corpus
	PromptFile string
	CorpusFile string

	// Optional infrastructure
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitURL   string
	RabbitQueue string
}

func Load() Config {
	listen := os.Getenv("LISTEN_ADDR")
	if listen == "" {
		listen = ":8000"
	}

	// DSN demo:
	// app:apppass@tcp(127.0.0.1:3306)/assistant?charset=utf8mb4&parseTime=true&loc=Local
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "app:apppass@tcp(127.0.0.1:3306)/assistant?charset=utf8mb4&parseTime=true&loc=Local"
	}

	secret := os.Getenv("IDENTITY_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	aiProvider := os.Getenv("AI_PROVIDER")
	if aiProvider == "" {
		aiProvider = "local"
	}

	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	ollamaModel := os.Getenv("MODEL_NAME")
	if ollamaModel == "" {
		ollamaModel = "qwen3:latest"
	}

	openAIModel := os.Getenv("OPENAI_MODEL_NAME")
	if openAIModel == "" {
		openAIModel = "gpt-4-turbo-preview"
	}

	geminiModel := os.Getenv("GEMINI_MODEL_NAME")
	if geminiModel == "" {
		geminiModel = "gemini-1.5-flash"
	}

	promptFile := os.Getenv("PROMPT_FILE")
	if promptFile == "" {
		promptFile = "prompts/system_prompts.md"
	}
	corpusFile := os.Getenv("CORPUS_FILE")
	if corpusFile == "" {
		corpusFile = "data/posts.json"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	rabbitQueue := os.Getenv("RABBIT_QUEUE")
	if rabbitQueue == "" {
		rabbitQueue = "chat_exchanges"
	}

	return Config{
		ListenAddr: listen,
		DBDSN:      dsn,

		IdentityURL:       os.Getenv("IDENTITY_URL"),
		IdentityAPIKey:    os.Getenv("IDENTITY_API_KEY"),
		IdentityJWTSecret: secret,

		AIProvider:  aiProvider,
		OllamaURL:   ollamaURL,
		OllamaModel: ollamaModel,

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  openAIModel,

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  geminiModel,

		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		FBPageAccessToken: os.Getenv("FB_PAGE_ACCESS_TOKEN"),
		FBVerifyToken:     os.Getenv("FB_VERIFY_TOKEN"),

		PromptFile: promptFile,
		CorpusFile: corpusFile,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		RabbitURL:   os.Getenv("RABBIT_URL"),
		RabbitQueue: rabbitQueue,
	}
}
