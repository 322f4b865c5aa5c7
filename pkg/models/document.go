package models

import (
	"context"
	"time"
)

// Document is a unit of knowledge-base content. Documents are created once
// and never mutated.
type Document struct {
	ID        string                 `json:"id"`
	Content   string                 `json:"content"`
	Embedding []float32              `json:"embedding"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// DocumentResponse is a Document as returned over the API, without its
// embedding.
type DocumentResponse struct {
	ID        string                 `json:"id"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type KnowledgePayload struct {
	Content  string                 `json:"content"            validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type KnowledgeResponse struct {
	Document  DocumentResponse `json:"document"`
	Timestamp time.Time        `json:"timestamp"`
}

// DocumentStore is an append-only document collection.
type DocumentStore interface {
	// Load reads the persisted collection. A missing collection is not an error.
	Load(ctx context.Context) error
	// Append adds a document and persists the whole collection before returning.
	Append(ctx context.Context, doc Document) error
	// All returns a snapshot of the collection in insertion order.
	All() []Document
	Len() int
	// SizeBytes is the size of the last persisted collection.
	SizeBytes() int64
}
