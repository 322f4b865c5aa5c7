package config

import "time"

// defaults holds a value for every configuration key so the service runs
// without a config file.
var defaults = map[string]any{
	"llm.service":                  "",
	"llm.model":                    "gpt-3.5-turbo",
	"llm.temperature":              0.7,
	"llm.top_p":                    0.9,
	"llm.max_tokens":               1000,
	"llm.openai_endpoint":          "",
	"llm.ollama_url":               "http://localhost:11434",
	"llm.timeout":                  30 * time.Second,
	"llm.probe_timeout":            5 * time.Second,
	"llm.openai_api_key":           "",
	"llm.anthropic_api_key":        "",
	"embeddings.service":           "local",
	"embeddings.model":             "text-embedding-ada-002",
	"embeddings.dimensions":        512,
	"rag.similarity_threshold":     0.7,
	"rag.search_limit":             5,
	"rag.max_context_length":       4000,
	"cache.type":                   "memory",
	"cache.ttl":                    3600 * time.Second,
	"cache.check_period":           600 * time.Second,
	"cache.redis_url":              "redis://localhost:6379/0",
	"storage.type":                 "file",
	"storage.path":                 "./data/vector_db",
	"storage.s3.bucket":            "",
	"storage.s3.prefix":            "cropwise",
	"storage.s3.region":            "us-east-1",
	"storage.s3.endpoint":          "",
	"storage.s3.access_key_id":     "",
	"storage.s3.secret_access_key": "",
	"knowledge.watch_dir":          "",
	"server.host":                  "",
	"server.port":                  5001,
	"server.max_request_size":      10 << 20,
	"log.level":                    "info",
	"tracing.enabled":              false,
	"tracing.endpoint":             "localhost:4318",
}
