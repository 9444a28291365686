package judge

import (
	"os"
	"strings"
)

// Provider base URLs. Every supported provider speaks the OpenAI
// chat-completions wire format; only Upstage uses its own endpoint and key,
// the rest route through OpenRouter.
const (
	upstageBaseURL    = "https://api.upstage.ai/v1/solar"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// defaultModels maps each provider to its default scoring model.
var defaultModels = map[string]string{
	"upstage":   "solar-pro3",
	"google":    "google/gemini-3-pro-preview",
	"deepseek":  "deepseek/deepseek-v3.2",
	"anthropic": "anthropic/claude-opus-4.5",
	"openai":    "openai/gpt-5.2",
}

// Config selects and parameterizes the judge provider.
type Config struct {
	// Provider is one of upstage, google, deepseek, anthropic, openai.
	// Unknown values fall back to openai via OpenRouter.
	Provider string

	// Model overrides the provider default when set.
	Model string

	// APIKeys feeds the key rotator. At least one key is required.
	APIKeys []string

	// BaseURL overrides the provider endpoint, used by tests.
	BaseURL string

	// Temperature for scoring calls. Zero keeps runs reproducible.
	Temperature float64

	// MaxTokens caps the completion length.
	MaxTokens int
}

// ConfigFromEnv assembles a Config from the environment. The provider
// defaults to upstage; Upstage reads UPSTAGE_API_KEY and every other
// provider reads OPENROUTER_API_KEY. Keys may be comma-separated to enable
// rotation.
func ConfigFromEnv() Config {
	provider := os.Getenv("ADDIE_EVAL_PROVIDER")
	if provider == "" {
		provider = "upstage"
	}

	keyEnv := "OPENROUTER_API_KEY"
	if provider == "upstage" {
		keyEnv = "UPSTAGE_API_KEY"
	}

	return Config{
		Provider:  provider,
		Model:     os.Getenv("ADDIE_EVAL_MODEL"),
		APIKeys:   splitKeys(os.Getenv(keyEnv)),
		MaxTokens: defaultMaxTokens,
	}
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Provider == "upstage" {
		return upstageBaseURL
	}
	return openRouterBaseURL
}

// EffectiveModel is the model the client will request: the configured
// override when set, otherwise the provider default.
func (c Config) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	if m, ok := defaultModels[c.Provider]; ok {
		return m
	}
	return defaultModels["openai"]
}
