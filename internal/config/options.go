package config

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns every configuration key with its default and
// meaning. Keys map to environment variables by upper-casing them.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "app_name", Default: "DocentIA", Comment: "Application name reported by GET /"},
		{Key: "app_version", Default: "1.0.0", Comment: "Application version reported by GET /"},
		{Key: "host", Default: "0.0.0.0", Comment: "HTTP listen host"},
		{Key: "port", Default: "8000", Comment: "HTTP listen port"},
		{Key: "cors_origins", Default: []string{"http://localhost:3000", "http://localhost:8000", "https://docentia-frontend.vercel.app"}, Comment: "Allowed CORS origins (comma-separated in env)"},
		{Key: "docentia_api_key", Default: "", Comment: "Bearer token required on /api/* when set"},

		{Key: "ai_provider", Default: "claude", Comment: "Active provider: claude, openai or gemini"},
		{Key: "anthropic_api_key", Default: "", Comment: "Claude API key"},
		{Key: "claude_model", Default: "claude-sonnet-4-20250514", Comment: "Claude model"},
		{Key: "anthropic_base_url", Default: "https://api.anthropic.com", Comment: "Claude API base URL"},
		{Key: "openai_api_key", Default: "", Comment: "OpenAI API key"},
		{Key: "openai_model", Default: "gpt-4o", Comment: "OpenAI model"},
		{Key: "openai_base_url", Default: "https://api.openai.com", Comment: "OpenAI API base URL"},
		{Key: "google_api_key", Default: "", Comment: "Gemini API key"},
		{Key: "gemini_model", Default: "gemini-pro", Comment: "Gemini model"},
		{Key: "gemini_base_url", Default: "https://generativelanguage.googleapis.com", Comment: "Gemini API base URL"},
		{Key: "request_timeout", Default: "120s", Comment: "Timeout for one provider call"},

		{Key: "worker_count", Default: 2, Comment: "Async generation workers"},
		{Key: "max_queue_size", Default: 50, Comment: "Queued async jobs before submissions are rejected"},
		{Key: "max_concurrent_generations", Default: 3, Comment: "Parallel provider calls in a batch"},
		{Key: "job_ttl", Default: "1h", Comment: "How long finished jobs stay queryable"},

		{Key: "max_body_bytes", Default: int64(2 << 20), Comment: "Maximum JSON request body"},
		{Key: "max_upload_bytes", Default: int64(20 << 20), Comment: "Maximum reference material upload"},

		{Key: "material_token_budget", Default: 3000, Comment: "Estimated tokens of reference material added to a prompt"},
		{Key: "chunk_size", Default: 800, Comment: "Target tokens per reference material chunk"},
		{Key: "chunk_overlap", Default: 80, Comment: "Overlap tokens between chunks"},
		{Key: "pdf_fallback_pdftotext", Default: true, Comment: "Use pdftotext when the PDF reader finds no text"},

		{Key: "log_level", Default: "info", Comment: "debug, info, warn or error"},
	}
}

// IsSecret reports whether a key holds a credential that must not be printed.
func IsSecret(key string) bool {
	switch key {
	case "docentia_api_key", "anthropic_api_key", "openai_api_key", "google_api_key":
		return true
	}
	return false
}
