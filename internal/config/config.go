package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/flaminghawk1207/mindmirror/backend/internal/llm/gemini"
)

const (
	ProviderGemini = "gemini"
	ProviderArk    = "ark"
)

// Config aggregates every setting of the service.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Store  StoreConfig
	Log    LogConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Store: store, Log: loadLogConfig()}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3001"
	}

	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	if strings.Contains(port, ":") {
		// Accept ":3001" or "127.0.0.1:3001" as-is.
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// AIConfig describes the model provider.
type AIConfig struct {
	Provider string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	ArkAPIKey      string
	ArkAccessKey   string
	ArkSecretKey   string
	ArkModel       string
	ArkBaseURL     string
	ArkRegion      string
	ArkTemperature *float64
	ArkTopP        *float64
	ArkMaxTokens   *int
}

// MissingCredential returns an operator-facing message when the selected
// provider cannot be called, or "" when it is configured.
func (c AIConfig) MissingCredential() string {
	switch c.Provider {
	case ProviderArk:
		if c.ArkModel == "" || (c.ArkAPIKey == "" && (c.ArkAccessKey == "" || c.ArkSecretKey == "")) {
			return "Ark credentials not set."
		}
	default:
		if c.GeminiAPIKey == "" {
			return "Gemini API key not set."
		}
	}
	return ""
}

// NewChatModel creates the model for the selected provider.
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if msg := c.MissingCredential(); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}

	switch c.Provider {
	case ProviderArk:
		return c.newArkModel(ctx)
	default:
		return gemini.NewClient(gemini.Config{
			APIKey:  c.GeminiAPIKey,
			Model:   c.GeminiModel,
			BaseURL: c.GeminiBaseURL,
			Timeout: c.GeminiTimeout,
		})
	}
}

func (c AIConfig) newArkModel(ctx context.Context) (model.BaseChatModel, error) {
	var temperature *float32
	if c.ArkTemperature != nil {
		val := float32(*c.ArkTemperature)
		temperature = &val
	}

	var topP *float32
	if c.ArkTopP != nil {
		val := float32(*c.ArkTopP)
		topP = &val
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     c.ArkBaseURL,
		Region:      c.ArkRegion,
		APIKey:      c.ArkAPIKey,
		AccessKey:   c.ArkAccessKey,
		SecretKey:   c.ArkSecretKey,
		Model:       c.ArkModel,
		MaxTokens:   c.ArkMaxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderGemini))
	if provider != ProviderGemini && provider != ProviderArk {
		return AIConfig{}, fmt.Errorf("invalid LLM_PROVIDER value %q: want %s or %s", provider, ProviderGemini, ProviderArk)
	}

	timeout, err := parseDurationEnv("GEMINI_TIMEOUT", gemini.DefaultTimeout)
	if err != nil {
		return AIConfig{}, err
	}

	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		Provider:       provider,
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", gemini.DefaultModel),
		GeminiBaseURL:  getEnvOrDefault("GEMINI_BASE_URL", gemini.DefaultBaseURL),
		GeminiTimeout:  timeout,
		ArkAPIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		ArkTemperature: temperature,
		ArkTopP:        topP,
		ArkMaxTokens:   maxTokens,
	}, nil
}

// StoreConfig controls the optional journal and mood history storage.
type StoreConfig struct {
	// Path selects a SQLite file; empty keeps everything in memory.
	Path            string
	RecordChatMoods bool
	SuggestionsFile string
}

func loadStoreConfig() (StoreConfig, error) {
	record, err := parseBoolEnv("CHAT_RECORD_MOODS", false)
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{
		Path:            strings.TrimSpace(os.Getenv("STORE_PATH")),
		RecordChatMoods: record,
		SuggestionsFile: strings.TrimSpace(os.Getenv("SUGGESTIONS_FILE")),
	}, nil
}

// LogConfig selects logrus level and formatter.
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
