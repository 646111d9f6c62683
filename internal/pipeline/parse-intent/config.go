// internal/pipeline/parse-intent/config.go
package parseintent

import "time"

type Config struct {
	ClassifierBaseURL string
	Timeout           time.Duration
	MaxRetries        int

	// MinScore is the confidence gate: classifier output below it is
	// downgraded to unknown, never reported as a failure.
	MinScore float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		MinScore: 0.10,
	}
}
