package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopherchat/assistant-gateway/internal/config"
	"github.com/gopherchat/assistant-gateway/internal/prompt"
)

type stubProvider struct {
	calls         int
	reply         string
	err           error
	notConfigured string
	lastSystem    string
	lastUser      string
}

func (s *stubProvider) Configured() (bool, string) {
	if s.notConfigured != "" {
		return false, s.notConfigured
	}
	return true, ""
}

func (s *stubProvider) Generate(_ context.Context, systemInstruction, userText string) (string, error) {
	s.calls++
	s.lastSystem = systemInstruction
	s.lastUser = userText
	return s.reply, s.err
}

func newTestRouter(t *testing.T, active string, providers map[string]*stubProvider) *Router {
	t.Helper()
	reg := NewRegistry()
	for name, p := range providers {
		p := p
		reg.Register(name, func(ctx context.Context) (Provider, error) { return p, nil })
	}
	return NewRouter(reg, config.NewSettings(active, ""), prompt.Defaults())
}

func TestAnswer_ReturnsProviderText(t *testing.T) {
	p := &stubProvider{reply: "hello there"}
	r := newTestRouter(t, ProviderLocal, map[string]*stubProvider{ProviderLocal: p})

	got := r.Answer(context.Background(), "hi", "")
	require.Equal(t, "hello there", got)
	require.Equal(t, 1, p.calls)
	require.Equal(t, "hi", p.lastUser)
	require.Equal(t, prompt.DefaultChat, p.lastSystem)
}

func TestAnswer_AppendsContextClause(t *testing.T) {
	p := &stubProvider{reply: "ok"}
	r := newTestRouter(t, ProviderLocal, map[string]*stubProvider{ProviderLocal: p})

	r.Answer(context.Background(), "question", "refund policy applies within 30 days")
	require.True(t, strings.HasPrefix(p.lastSystem, prompt.DefaultChat))
	require.Contains(t, p.lastSystem, "Use the following context to answer:\nrefund policy applies within 30 days")
}

func TestAnswer_NotConfiguredMakesNoCall(t *testing.T) {
	p := &stubProvider{notConfigured: "Gemini API Key is not configured."}
	r := newTestRouter(t, ProviderGemini, map[string]*stubProvider{ProviderGemini: p})

	got := r.Answer(context.Background(), "hi", "")
	require.Equal(t, "Gemini API Key is not configured.", got)
	require.Zero(t, p.calls)
}

func TestAnswer_FailureRenderedWithFixedPrefix(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	r := newTestRouter(t, ProviderLocal, map[string]*stubProvider{ProviderLocal: p})

	got := r.Answer(context.Background(), "hi", "")
	require.True(t, strings.HasPrefix(got, ProviderErrorPrefix))
	require.Contains(t, got, "connection refused")
}

func TestAnswer_NoFallbackOnFailure(t *testing.T) {
	hosted := &stubProvider{err: errors.New("outage")}
	local := &stubProvider{reply: "should not be used"}
	r := newTestRouter(t, ProviderOpenAI, map[string]*stubProvider{
		ProviderOpenAI: hosted,
		ProviderLocal:  local,
	})

	got := r.Answer(context.Background(), "hi", "")
	require.True(t, strings.HasPrefix(got, ProviderErrorPrefix))
	require.Zero(t, local.calls)
}

func TestAnswer_UnknownSelectionFallsBackToLocal(t *testing.T) {
	local := &stubProvider{reply: "local reply"}
	r := newTestRouter(t, "something-else", map[string]*stubProvider{ProviderLocal: local})

	got := r.Answer(context.Background(), "hi", "")
	require.Equal(t, "local reply", got)
}

func TestAnswer_SelectionFollowsSettingsUpdate(t *testing.T) {
	local := &stubProvider{reply: "from local"}
	hosted := &stubProvider{reply: "from hosted"}
	reg := NewRegistry()
	reg.Register(ProviderLocal, func(ctx context.Context) (Provider, error) { return local, nil })
	reg.Register(ProviderOpenAI, func(ctx context.Context) (Provider, error) { return hosted, nil })
	settings := config.NewSettings(ProviderLocal, "")
	r := NewRouter(reg, settings, prompt.Defaults())

	require.Equal(t, "from local", r.Answer(context.Background(), "hi", ""))
	settings.SetActiveProvider(ProviderOpenAI)
	require.Equal(t, "from hosted", r.Answer(context.Background(), "hi", ""))
}
