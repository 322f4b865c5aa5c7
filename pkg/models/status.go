package models

import "time"

type StatusStats struct {
	VectorDBSize int        `json:"vector_db_size"`
	CacheSize    int        `json:"cache_size"`
	CacheStats   CacheStats `json:"cache_stats"`
	StoreBytes   int64      `json:"store_bytes"`
	StoreSize    string     `json:"store_size"`
	LLM          string     `json:"llm"`
	Embedder     string     `json:"embedder"`
	DemoMode     bool       `json:"demo_mode"`
	// LLMReachable is set only when a probe was requested.
	LLMReachable *bool `json:"llm_reachable,omitempty"`
}

type StatusResponse struct {
	Status    string      `json:"status"`
	Stats     StatusStats `json:"stats"`
	Timestamp time.Time   `json:"timestamp"`
}

// HealthResponse is served by the unauthenticated health endpoint.
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
}
