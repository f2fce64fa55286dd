package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docentia/internal/config"
)

// Dispatcher routes generation requests to the active provider. Every
// provider with an API key gets a client so /health can report it.
type Dispatcher struct {
	active   Provider
	handlers map[Provider]handler
	models   map[Provider]string
	stats    map[Provider]*Stats
	log      *slog.Logger
}

func NewDispatcher(cfg config.Config, log *slog.Logger) (*Dispatcher, error) {
	active, err := ParseProvider(cfg.AIProvider)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	d := &Dispatcher{
		active:   active,
		handlers: make(map[Provider]handler),
		models: map[Provider]string{
			Claude: cfg.ClaudeModel,
			OpenAI: cfg.OpenAIModel,
			Gemini: cfg.GeminiModel,
		},
		stats: make(map[Provider]*Stats),
		log:   log.With("component", "llm"),
	}
	if cfg.AnthropicAPIKey != "" {
		d.handlers[Claude] = NewClaudeClient(cfg.AnthropicAPIKey, cfg.ClaudeModel, cfg.AnthropicBaseURL, cfg.RequestTimeout)
	}
	if cfg.OpenAIAPIKey != "" {
		d.handlers[OpenAI] = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.RequestTimeout)
	}
	if cfg.GoogleAPIKey != "" {
		d.handlers[Gemini] = NewGeminiClient(cfg.GoogleAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.RequestTimeout)
	}
	for _, p := range Providers() {
		d.stats[p] = NewStats(time.Hour)
	}

	if _, ok := d.handlers[active]; !ok {
		return nil, fmt.Errorf("%w: %s has no api key", ErrNotConfigured, active)
	}
	d.log.Info("ai provider ready", "provider", active.String(), "model", d.models[active])
	return d, nil
}

// Generate sends one prompt pair to the active provider.
func (d *Dispatcher) Generate(ctx context.Context, req Request) (Result, error) {
	return d.GenerateWith(ctx, d.active, req)
}

// GenerateWith sends one prompt pair to a specific configured provider.
func (d *Dispatcher) GenerateWith(ctx context.Context, p Provider, req Request) (Result, error) {
	h, ok := d.handlers[p]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNotConfigured, p)
	}
	stats := d.stats[p]

	start := time.Now()
	text, usage, err := h.generate(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		stats.RecordError()
		d.log.Error("generation failed",
			"provider", p.String(),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return Result{}, err
	}

	res := Result{
		Content:  stripFence(text),
		Provider: p,
		Model:    h.model(),
		Duration: elapsed,
		Usage:    usage,
	}
	stats.Record(elapsed, usage.Tokens())

	attrs := []any{
		"provider", p.String(),
		"model", res.Model,
		"duration_ms", elapsed.Milliseconds(),
		"chars", len(res.Content),
	}
	if n := usage.Tokens(); n != nil {
		attrs = append(attrs, "tokens", *n)
	}
	d.log.Info("generation completed", attrs...)
	return res, nil
}

func (d *Dispatcher) Active() Provider { return d.active }

func (d *Dispatcher) Model() string { return d.models[d.active] }

// Status reports every provider keyed by name.
func (d *Dispatcher) Status() map[string]ProviderStatus {
	out := make(map[string]ProviderStatus, len(providerNames))
	for _, p := range Providers() {
		_, ok := d.handlers[p]
		out[p.String()] = ProviderStatus{
			Configured:  ok,
			Initialized: ok,
			Model:       d.models[p],
		}
	}
	return out
}

func (d *Dispatcher) Stats() map[string]StatsSnapshot {
	out := make(map[string]StatsSnapshot, len(d.stats))
	for p, s := range d.stats {
		out[p.String()] = s.Snapshot()
	}
	return out
}

func (d *Dispatcher) Close() {
	for _, h := range d.handlers {
		h.close()
	}
}
