package chat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedCorpus_ImportsOnceAndKeepsOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	path := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"content": "refund policy applies within 30 days"},
		{"content": ""},
		{"content": "office hours run 9 to 5"}
	]`), 0o644))

	require.NoError(t, repo.SeedCorpus(context.Background(), path))
	chunks, err := repo.Chunks(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{
		"refund policy applies within 30 days",
		"office hours run 9 to 5",
	}, chunks)

	// A second seed run is a no-op once the corpus is populated.
	require.NoError(t, repo.SeedCorpus(context.Background(), path))
	chunks, err = repo.Chunks(context.Background())
	require.NoError(t, err)
	require.Len(t, chunks, 2)
}

func TestSeedCorpus_MissingFileIsNotAnError(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	require.NoError(t, repo.SeedCorpus(context.Background(), filepath.Join(t.TempDir(), "absent.json")))

	chunks, err := repo.Chunks(context.Background())
	require.NoError(t, err)
	require.Empty(t, chunks)
}
