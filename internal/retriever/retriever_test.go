package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sliceCorpus []string

func (c sliceCorpus) Chunks(context.Context) ([]string, error) {
	return c, nil
}

type failingCorpus struct{}

func (failingCorpus) Chunks(context.Context) ([]string, error) {
	return nil, errors.New("corpus unavailable")
}

func TestRetrieve_NoOverlapReturnsEmpty(t *testing.T) {
	r := New(sliceCorpus{"shipping takes three days", "we are closed on sundays"})
	require.Empty(t, r.Retrieve(context.Background(), "quantum entanglement"))
}

func TestRetrieve_EmptyQueryReturnsEmpty(t *testing.T) {
	r := New(sliceCorpus{"anything"})
	require.Empty(t, r.Retrieve(context.Background(), ""))
	require.Empty(t, r.Retrieve(context.Background(), "   \t\n"))
}

func TestRetrieve_EmptyCorpusReturnsEmpty(t *testing.T) {
	r := New(sliceCorpus{})
	require.Empty(t, r.Retrieve(context.Background(), "hello"))
}

func TestRetrieve_CorpusErrorCollapsesToEmpty(t *testing.T) {
	r := New(failingCorpus{})
	require.Empty(t, r.Retrieve(context.Background(), "hello"))
}

func TestRetrieve_CapsAtFiveInCorpusOrder(t *testing.T) {
	var chunks []string
	for i := 0; i < 8; i++ {
		chunks = append(chunks, fmt.Sprintf("policy item %d", i))
	}
	r := New(sliceCorpus(chunks))

	got := r.Retrieve(context.Background(), "policy")
	parts := strings.Split(got, "\n\n")
	require.Len(t, parts, 5)
	for i, p := range parts {
		require.Equal(t, fmt.Sprintf("policy item %d", i), p)
	}
}

func TestRetrieve_Idempotent(t *testing.T) {
	r := New(sliceCorpus{"refund policy applies within 30 days", "other text"})
	first := r.Retrieve(context.Background(), "refund policy")
	second := r.Retrieve(context.Background(), "refund policy")
	require.Equal(t, first, second)
}

func TestRetrieve_RefundPolicyScenario(t *testing.T) {
	r := New(sliceCorpus{
		"our office hours run 9 to 5",
		"refund policy applies within 30 days",
		"the cafeteria serves lunch at noon",
		"parking spaces are on level 2",
		"the wifi password rotates monthly",
	})

	got := r.Retrieve(context.Background(), "What is your refund policy?")
	require.Equal(t, "refund policy applies within 30 days", got)
}

func TestRetrieve_MatchIsCaseInsensitiveSubstring(t *testing.T) {
	r := New(sliceCorpus{"REFUNDS are processed weekly"})
	got := r.Retrieve(context.Background(), "refund")
	require.Equal(t, "REFUNDS are processed weekly", got)
}
