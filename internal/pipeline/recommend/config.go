package recommend

import "time"

type Config struct {
	EmbedderBaseURL string
	Timeout         time.Duration
	MaxRetries      int

	// TopK bounds the result list; MinScore is the cosine similarity
	// floor below which a candidate is dropped even inside the top-k.
	TopK     int
	MinScore float64

	// MinQueryLen guards against noise queries: shorter trimmed input
	// yields an empty result without calling the embedder.
	MinQueryLen int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		TopK:        3,
		MinScore:    0.25,
		MinQueryLen: 3,
	}
}
