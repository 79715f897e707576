package ai

import "context"

// Provider is an interchangeable backend capable of producing a text
// completion for a system instruction and a single user turn.
type Provider interface {
	// Generate performs one non-streaming completion call.
	Generate(ctx context.Context, systemInstruction, userText string) (string, error)

	// Configured reports whether the provider has the credentials it
	// needs. When it does not, msg is a human-readable advisory that is
	// returned to the user instead of attempting a call.
	Configured() (ok bool, msg string)
}

const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)
