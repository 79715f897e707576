package chat

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Chunks returns every corpus chunk in insertion order, satisfying the
// retriever's Corpus contract.
func (r *Repo) Chunks(ctx context.Context) ([]string, error) {
	var contents []string
	if err := r.db.WithContext(ctx).
		Model(&DocumentChunk{}).
		Order("id ASC").
		Pluck("content", &contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

type seedPost struct {
	Content string `json:"content"`
}

// SeedCorpus imports the posts file into the chunk table when the
// corpus is still empty. A missing file is not an error; the retriever
// simply has nothing to match against.
func (r *Repo) SeedCorpus(ctx context.Context, path string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DocumentChunk{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var posts []seedPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc := Document{Title: path}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		for _, p := range posts {
			if p.Content == "" {
				continue
			}
			chunk := DocumentChunk{DocumentID: doc.ID, Content: p.Content}
			if err := tx.Create(&chunk).Error; err != nil {
				return err
			}
		}
		log.Info().Int("posts", len(posts)).Str("file", path).Msg("context corpus seeded")
		return nil
	})
}
