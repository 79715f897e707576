package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// The developer's shell must not leak into the assertions.
	for _, v := range []string{
		"LISTEN_ADDR", "AI_PROVIDER", "OLLAMA_URL",
		"PROMPT_FILE", "CORPUS_FILE", "RABBIT_QUEUE",
	} {
		t.Setenv(v, "")
	}

	cfg := Load()
	require.Equal(t, ":8000", cfg.ListenAddr)
	require.Equal(t, "local", cfg.AIProvider)
	require.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	require.Equal(t, "prompts/system_prompts.md", cfg.PromptFile)
	require.Equal(t, "data/posts.json", cfg.CorpusFile)
	require.Equal(t, "chat_exchanges", cfg.RabbitQueue)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	require.Equal(t, ":9999", cfg.ListenAddr)
	require.Equal(t, "gemini", cfg.AIProvider)
	require.Equal(t, 3, cfg.RedisDB)
}

func TestSettings_LastWriterWins(t *testing.T) {
	s := NewSettings("local", "tok-a")
	s.SetActiveProvider("openai")
	s.SetTelegramBotToken("tok-b")
	require.Equal(t, "openai", s.ActiveProvider())
	require.Equal(t, "tok-b", s.TelegramBotToken())
}

func TestSettings_ConcurrentAccess(t *testing.T) {
	s := NewSettings("local", "tok")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetActiveProvider("gemini")
		}()
		go func() {
			defer wg.Done()
			_ = s.ActiveProvider()
		}()
	}
	wg.Wait()
	require.Equal(t, "gemini", s.ActiveProvider())
}
