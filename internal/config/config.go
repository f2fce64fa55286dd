package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppName    string
	AppVersion string
	Host       string
	Port       string

	// CORS
	CORSOrigins []string

	// Auth
	DocentiaAPIKey string

	// Providers
	AIProvider       string
	AnthropicAPIKey  string
	ClaudeModel      string
	AnthropicBaseURL string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	GoogleAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	RequestTimeout   time.Duration

	// Worker pool
	WorkerCount              int
	MaxQueueSize             int
	MaxConcurrentGenerations int

	// Job state
	JobTTL time.Duration

	// Body limits
	MaxBodyBytes   int64
	MaxUploadBytes int64

	// Reference material
	MaterialTokenBudget  int
	ChunkSize            int
	ChunkOverlap         int
	PDFFallbackPdftotext bool

	LogLevel string
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence defaults < file < env.
// Without an explicit config file a .env in the working directory is read
// as dotenv.
func Load(v *viper.Viper) (Config, error) {
	if v.ConfigFileUsed() == "" {
		if _, err := os.Stat(".env"); err == nil {
			v.SetConfigFile(".env")
			v.SetConfigType("env")
		}
	}

	applyDefaults(v)

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

// Default returns the configuration built from defaults alone, ignoring
// files and the environment.
func Default() Config {
	v := viper.New()
	applyDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		AppName:    v.GetString("app_name"),
		AppVersion: v.GetString("app_version"),
		Host:       v.GetString("host"),
		Port:       v.GetString("port"),

		CORSOrigins: stringList(v, "cors_origins"),

		DocentiaAPIKey: v.GetString("docentia_api_key"),

		AIProvider:       strings.ToLower(strings.TrimSpace(v.GetString("ai_provider"))),
		AnthropicAPIKey:  v.GetString("anthropic_api_key"),
		ClaudeModel:      v.GetString("claude_model"),
		AnthropicBaseURL: v.GetString("anthropic_base_url"),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		OpenAIModel:      v.GetString("openai_model"),
		OpenAIBaseURL:    v.GetString("openai_base_url"),
		GoogleAPIKey:     v.GetString("google_api_key"),
		GeminiModel:      v.GetString("gemini_model"),
		GeminiBaseURL:    v.GetString("gemini_base_url"),
		RequestTimeout:   v.GetDuration("request_timeout"),

		WorkerCount:              v.GetInt("worker_count"),
		MaxQueueSize:             v.GetInt("max_queue_size"),
		MaxConcurrentGenerations: v.GetInt("max_concurrent_generations"),

		JobTTL: v.GetDuration("job_ttl"),

		MaxBodyBytes:   v.GetInt64("max_body_bytes"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),

		MaterialTokenBudget:  v.GetInt("material_token_budget"),
		ChunkSize:            v.GetInt("chunk_size"),
		ChunkOverlap:         v.GetInt("chunk_overlap"),
		PDFFallbackPdftotext: v.GetBool("pdf_fallback_pdftotext"),

		LogLevel: strings.ToLower(v.GetString("log_level")),
	}
}

// Addr is the listen address.
// Values renders every option as a string keyed like GetConfigOptions.
func (c Config) Values() map[string]string {
	itoa := strconv.Itoa
	return map[string]string{
		"app_name":                   c.AppName,
		"app_version":                c.AppVersion,
		"host":                       c.Host,
		"port":                       c.Port,
		"cors_origins":               strings.Join(c.CORSOrigins, ","),
		"docentia_api_key":           c.DocentiaAPIKey,
		"ai_provider":                c.AIProvider,
		"anthropic_api_key":          c.AnthropicAPIKey,
		"claude_model":               c.ClaudeModel,
		"anthropic_base_url":         c.AnthropicBaseURL,
		"openai_api_key":             c.OpenAIAPIKey,
		"openai_model":               c.OpenAIModel,
		"openai_base_url":            c.OpenAIBaseURL,
		"google_api_key":             c.GoogleAPIKey,
		"gemini_model":               c.GeminiModel,
		"gemini_base_url":            c.GeminiBaseURL,
		"request_timeout":            c.RequestTimeout.String(),
		"worker_count":               itoa(c.WorkerCount),
		"max_queue_size":             itoa(c.MaxQueueSize),
		"max_concurrent_generations": itoa(c.MaxConcurrentGenerations),
		"job_ttl":                    c.JobTTL.String(),
		"max_body_bytes":             strconv.FormatInt(c.MaxBodyBytes, 10),
		"max_upload_bytes":           strconv.FormatInt(c.MaxUploadBytes, 10),
		"material_token_budget":      itoa(c.MaterialTokenBudget),
		"chunk_size":                 itoa(c.ChunkSize),
		"chunk_overlap":              itoa(c.ChunkOverlap),
		"pdf_fallback_pdftotext":     strconv.FormatBool(c.PDFFallbackPdftotext),
		"log_level":                  c.LogLevel,
	}
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c Config) Validate() error {
	var problems []string
	if c.Port == "" {
		problems = append(problems, "port is required")
	}
	switch c.AIProvider {
	case "claude":
		if c.AnthropicAPIKey == "" {
			problems = append(problems, "ANTHROPIC_API_KEY is required when ai_provider is claude")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			problems = append(problems, "OPENAI_API_KEY is required when ai_provider is openai")
		}
	case "gemini":
		if c.GoogleAPIKey == "" {
			problems = append(problems, "GOOGLE_API_KEY is required when ai_provider is gemini")
		}
	default:
		problems = append(problems, fmt.Sprintf("ai_provider %q is not one of claude, openai, gemini", c.AIProvider))
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "worker_count must be greater than 0")
	}
	if c.MaxQueueSize <= 0 {
		problems = append(problems, "max_queue_size must be greater than 0")
	}
	if c.MaxConcurrentGenerations <= 0 {
		problems = append(problems, "max_concurrent_generations must be greater than 0")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "request_timeout must be greater than 0")
	}
	if c.JobTTL <= 0 {
		problems = append(problems, "job_ttl must be greater than 0")
	}
	if c.MaxBodyBytes <= 0 || c.MaxUploadBytes <= 0 {
		problems = append(problems, "max_body_bytes and max_upload_bytes must be greater than 0")
	}
	if c.ChunkSize <= 0 {
		problems = append(problems, "chunk_size must be greater than 0")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		problems = append(problems, "chunk_overlap must be between 0 and chunk_size")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// stringList accepts both a list value and a comma-separated string, which
// is what environment variables provide.
func stringList(v *viper.Viper, key string) []string {
	raw := v.Get(key)
	var parts []string
	switch t := raw.(type) {
	case string:
		parts = strings.Split(t, ",")
	default:
		parts = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
