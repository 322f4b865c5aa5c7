// Package knowledge adds documents to the knowledge base, either directly,
// from the seed corpus or from files dropped into a watched directory.
package knowledge

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
)

var log = internal.GetLogger()

var _ models.KnowledgeBase = &Service{}

type Service struct {
	store    models.DocumentStore
	embedder models.Embedder
	now      func() time.Time
}

func NewService(store models.DocumentStore, embedder models.Embedder) *Service {
	return &Service{store: store, embedder: embedder, now: time.Now}
}

// AddDocument embeds content and appends it to the store. The returned
// document is durable. A "timestamp" metadata key records the creation time.
func (s *Service) AddDocument(
	ctx context.Context,
	content string,
	metadata map[string]any,
) (*models.Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewBadRequestError("content is required")
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	doc := models.Document{
		ID:        id.String(),
		Content:   content,
		Embedding: embedding,
		Metadata: internal.MergeMaps(metadata, map[string]any{
			"timestamp": createdAt.Format(time.RFC3339),
		}),
		CreatedAt: createdAt,
	}

	if err := s.store.Append(ctx, doc); err != nil {
		return nil, err
	}

	log.Infof("added document %s to knowledge base", doc.ID)
	return &doc, nil
}
