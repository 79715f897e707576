package ai

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gopherchat/assistant-gateway/internal/config"
	"github.com/gopherchat/assistant-gateway/internal/prompt"
)

// ProviderErrorPrefix starts every reply produced for a failed backend
// call. Channel adapters have no richer error channel than the reply
// text itself.
const ProviderErrorPrefix = "Error contacting AI Provider: "

// Router selects exactly one provider per request from the process-wide
// settings and converts every backend failure into a displayable reply.
type Router struct {
	registry *Registry
	settings *config.Settings
	prompts  prompt.Prompts
}

func NewRouter(registry *Registry, settings *config.Settings, prompts prompt.Prompts) *Router {
	return &Router{registry: registry, settings: settings, prompts: prompts}
}

// Answer builds the system instruction, invokes the active provider
// once, and returns its text. It never fails to the caller: a backend
// error is rendered as a fixed-prefix string, a missing credential as
// the provider's own advisory. There is no fallback to a different
// provider on failure.
func (r *Router) Answer(ctx context.Context, userText, contextText string) string {
	systemInstruction := r.prompts.Chat
	if contextText != "" {
		systemInstruction += "\n\nUse the following context to answer:\n" + contextText
	}

	name := strings.ToLower(strings.TrimSpace(r.settings.ActiveProvider()))
	provider, err := r.registry.Get(ctx, name)
	if err != nil {
		// Unknown selections fall back to the local backend, matching
		// process start behavior where "local" is the default.
		provider, err = r.registry.Get(ctx, ProviderLocal)
		if err != nil {
			log.Error().Err(err).Str("provider", name).Msg("no usable ai provider")
			return ProviderErrorPrefix + err.Error()
		}
	}

	if ok, msg := provider.Configured(); !ok {
		return msg
	}

	reply, err := provider.Generate(ctx, systemInstruction, userText)
	if err != nil {
		log.Error().Err(err).Str("provider", name).Msg("error from ai provider")
		return ProviderErrorPrefix + err.Error()
	}
	return reply
}
