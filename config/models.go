package config

import "time"

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	LLM        LLM              `mapstructure:"llm"        yaml:"llm"`
	Embeddings EmbeddingsConfig `mapstructure:"embeddings" yaml:"embeddings"`
	RAG        RAGConfig        `mapstructure:"rag"        yaml:"rag"`
	Cache      CacheConfig      `mapstructure:"cache"      yaml:"cache"`
	Storage    StorageConfig    `mapstructure:"storage"    yaml:"storage"`
	Knowledge  KnowledgeConfig  `mapstructure:"knowledge"  yaml:"knowledge"`
	Server     ServerConfig     `mapstructure:"server"     yaml:"server"`
	Log        LogConfig        `mapstructure:"log"        yaml:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"    yaml:"tracing"`
}

type LLM struct {
	// Service is one of openai, anthropic, ollama. Empty or "demo" runs
	// without a model and serves fallback answers.
	Service     string  `mapstructure:"service"      yaml:"service"`
	Model       string  `mapstructure:"model"        yaml:"model"`
	Temperature float64 `mapstructure:"temperature"  yaml:"temperature"`
	TopP        float64 `mapstructure:"top_p"        yaml:"top_p"`
	MaxTokens   int     `mapstructure:"max_tokens"   yaml:"max_tokens"`
	// OpenAIAPIKey is loaded from ENV not config file.
	OpenAIAPIKey string `mapstructure:"openai_api_key" yaml:"-"`
	// AnthropicAPIKey is loaded from ENV not config file.
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key" yaml:"-"`
	OpenAIEndpoint  string        `mapstructure:"openai_endpoint"   yaml:"openai_endpoint"`
	OllamaURL       string        `mapstructure:"ollama_url"        yaml:"ollama_url"`
	Timeout         time.Duration `mapstructure:"timeout"           yaml:"timeout"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"     yaml:"probe_timeout"`
}

type EmbeddingsConfig struct {
	// Service is one of openai, ollama, local.
	Service    string `mapstructure:"service"    yaml:"service"`
	Model      string `mapstructure:"model"      yaml:"model"`
	Dimensions int    `mapstructure:"dimensions" yaml:"dimensions"`
}

type RAGConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	SearchLimit         int     `mapstructure:"search_limit"         yaml:"search_limit"`
	MaxContextLength    int     `mapstructure:"max_context_length"   yaml:"max_context_length"`
}

type CacheConfig struct {
	// Type is memory or redis.
	Type        string        `mapstructure:"type"         yaml:"type"`
	TTL         time.Duration `mapstructure:"ttl"          yaml:"ttl"`
	CheckPeriod time.Duration `mapstructure:"check_period" yaml:"check_period"`
	RedisURL    string        `mapstructure:"redis_url"    yaml:"redis_url"`
}

type StorageConfig struct {
	// Type is file, s3 or memory.
	Type string   `mapstructure:"type" yaml:"type"`
	Path string   `mapstructure:"path" yaml:"path"`
	S3   S3Config `mapstructure:"s3"   yaml:"s3"`
}

type S3Config struct {
	Bucket   string `mapstructure:"bucket"   yaml:"bucket"`
	Prefix   string `mapstructure:"prefix"   yaml:"prefix"`
	Region   string `mapstructure:"region"   yaml:"region"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// AccessKeyID and SecretAccessKey are loaded from ENV not config file.
	AccessKeyID     string `mapstructure:"access_key_id"     yaml:"-"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"-"`
}

type KnowledgeConfig struct {
	WatchDir string `mapstructure:"watch_dir" yaml:"watch_dir"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"             yaml:"host"`
	Port           int    `mapstructure:"port"             yaml:"port"`
	MaxRequestSize int64  `mapstructure:"max_request_size" yaml:"max_request_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"  yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// DemoMode is true when no language model service is configured.
func (c *Config) DemoMode() bool {
	return c.LLM.Service == "" || c.LLM.Service == "demo"
}
