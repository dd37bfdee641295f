package commentary

// Config holds recap generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns settings for a short, lively recap.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   300,
		Temperature: 0.8,
	}
}
