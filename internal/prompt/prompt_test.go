package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePromptFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system_prompts.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_BothSections(t *testing.T) {
	path := writePromptFile(t, `# System Prompts

## Analysis Prompt
You analyze documents carefully.

## Chat Prompt
You are the company assistant.
Answer politely.
`)

	p := Load(path)
	require.Equal(t, "You analyze documents carefully.", p.Analysis)
	require.Equal(t, "You are the company assistant.\nAnswer politely.", p.Chat)
}

func TestLoad_MissingSectionFallsBack(t *testing.T) {
	path := writePromptFile(t, `## Analysis Prompt
Only analysis here.
`)

	p := Load(path)
	require.Equal(t, "Only analysis here.", p.Analysis)
	require.Equal(t, DefaultChat, p.Chat)
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.md"))
	require.Equal(t, Defaults(), p)
}

func TestLoad_EmptySectionFallsBack(t *testing.T) {
	path := writePromptFile(t, `## Chat Prompt

## Analysis Prompt
Real content.
`)

	p := Load(path)
	require.Equal(t, DefaultChat, p.Chat)
	require.Equal(t, "Real content.", p.Analysis)
}
