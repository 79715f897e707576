package config

import "sync"

// Settings holds the runtime-mutable part of the gateway configuration:
// the active AI provider and the Telegram bot credential. Updates are
// administrative, last-writer-wins, and take effect for all subsequent
// calls. Reads and writes are safe for concurrent use.
type Settings struct {
	mu sync.RWMutex

	activeProvider   string
	telegramBotToken string
}

func NewSettings(activeProvider, telegramBotToken string) *Settings {
	return &Settings{
		activeProvider:   activeProvider,
		telegramBotToken: telegramBotToken,
	}
}

func (s *Settings) ActiveProvider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeProvider
}

func (s *Settings) SetActiveProvider(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeProvider = name
}

func (s *Settings) TelegramBotToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.telegramBotToken
}

// SetTelegramBotToken replaces the bot credential in memory for the
// lifetime of the process. Not persisted across restarts.
func (s *Settings) SetTelegramBotToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.telegramBotToken = token
}
