// Package prompt loads the operator-editable system prompts. The prompt
// file is plain markdown with two recognized sections, "## Analysis
// Prompt" and "## Chat Prompt"; a missing file or missing section falls
// back to the built-in defaults.
package prompt

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	DefaultAnalysis = "You are a professional assistant."
	DefaultChat     = "You are a helpful assistant."

	analysisHeading = "## Analysis Prompt"
	chatHeading     = "## Chat Prompt"
)

type Prompts struct {
	Analysis string
	Chat     string
}

func Defaults() Prompts {
	return Prompts{Analysis: DefaultAnalysis, Chat: DefaultChat}
}

// Load reads the prompt file at path. Errors are not fatal: the
// defaults are returned and the cause is logged.
func Load(path string) Prompts {
	p := Defaults()

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("file", path).Msg("error loading prompts")
		}
		return p
	}

	if s, ok := section(string(content), analysisHeading); ok {
		p.Analysis = s
	}
	if s, ok := section(string(content), chatHeading); ok {
		p.Chat = s
	}
	log.Info().Str("file", path).Msg("system prompts loaded")
	return p
}

// section returns the text between heading and the next "##" heading
// (or end of file), trimmed.
func section(content, heading string) (string, bool) {
	idx := strings.Index(content, heading)
	if idx < 0 {
		return "", false
	}
	body := content[idx+len(heading):]
	if end := strings.Index(body, "\n##"); end >= 0 {
		body = body[:end]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", false
	}
	return body, true
}
