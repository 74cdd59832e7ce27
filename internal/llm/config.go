// Package llm provides centralized LLM configuration and client abstractions
// for the research pipeline's model-backed components.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: query interpretation, snippet triage
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: identity verification, structured extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning over ambiguous fact bundles
	TierAdvanced ModelTier = "advanced"
)

// DefaultTimeout is the per-call timeout applied to model requests.
const DefaultTimeout = 10 * time.Second

// Config holds the model configuration for the application
type Config struct {
	Models  map[ModelTier]string
	Timeout time.Duration
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Timeout: DefaultTimeout,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
