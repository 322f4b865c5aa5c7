package models

import "time"

type SearchType string

const (
	SearchTypeSimilarity SearchType = "similarity"
	SearchTypeMMR        SearchType = "mmr"
)

type SearchResult struct {
	Document   Document `json:"document"`
	Similarity float64  `json:"similarity"`
}

// SearchOptions overrides the configured search defaults. Zero values fall
// back to configuration.
type SearchOptions struct {
	Limit      int
	Threshold  *float64
	SearchType SearchType
	MMRLambda  float64
}

type SearchPayload struct {
	Query      string     `json:"query"                 validate:"required"`
	Limit      int        `json:"limit,omitempty"       validate:"omitempty,min=1,max=100"`
	Threshold  *float64   `json:"threshold,omitempty"   validate:"omitempty,min=-1,max=1"`
	SearchType SearchType `json:"search_type,omitempty" validate:"omitempty,oneof=similarity mmr"`
	MMRLambda  float64    `json:"mmr_lambda,omitempty"  validate:"omitempty,min=0,max=1"`
}

type SearchResponse struct {
	Results   []SearchResultResponse `json:"results"`
	Query     string                 `json:"query"`
	Count     int                    `json:"count"`
	Timestamp time.Time              `json:"timestamp"`
}

type SearchResultResponse struct {
	Document   DocumentResponse `json:"document"`
	Similarity float64          `json:"similarity"`
}
