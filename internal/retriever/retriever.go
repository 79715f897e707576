// Package retriever implements the lexical context lookup that runs
// before every provider call. It is deliberately a cheap, deterministic
// substring search over a small chunk corpus: no tokenizer, no ranking.
package retriever

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxMatches caps the number of chunks joined into one context block.
const maxMatches = 5

// Corpus supplies document chunks in stored order.
type Corpus interface {
	Chunks(ctx context.Context) ([]string, error)
}

type Retriever struct {
	corpus Corpus
}

func New(corpus Corpus) *Retriever {
	return &Retriever{corpus: corpus}
}

// Retrieve returns a bounded block of supporting text for query. It
// never fails to the caller: an empty query, an empty corpus, and any
// internal error all collapse to the empty string.
func (r *Retriever) Retrieve(ctx context.Context, query string) string {
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return ""
	}

	chunks, err := r.corpus.Chunks(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error reading context corpus")
		return ""
	}

	var matches []string
	for _, chunk := range chunks {
		if anyKeywordIn(strings.ToLower(chunk), keywords) {
			matches = append(matches, chunk)
			if len(matches) == maxMatches {
				break
			}
		}
	}
	return strings.Join(matches, "\n\n")
}

func anyKeywordIn(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}
