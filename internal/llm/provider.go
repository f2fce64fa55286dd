// Package llm sends one system/user prompt pair to the configured text
// generation provider and normalizes the answer.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Provider identifies one of the supported generation backends.
type Provider int

const (
	Claude Provider = iota
	OpenAI
	Gemini
)

var providerNames = [...]string{"claude", "openai", "gemini"}

func (p Provider) String() string {
	if p < 0 || int(p) >= len(providerNames) {
		return fmt.Sprintf("provider(%d)", int(p))
	}
	return providerNames[p]
}

// Providers lists every supported provider in a fixed order.
func Providers() []Provider {
	return []Provider{Claude, OpenAI, Gemini}
}

// ParseProvider accepts a provider name in any case, ignoring surrounding
// spaces.
func ParseProvider(s string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range providerNames {
		if n == name {
			return Provider(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ai provider %q (expected claude, openai or gemini)", s)
}

// Request is one prompt pair with its sampling limits.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Usage holds token counts. A nil field means the provider did not report it.
type Usage struct {
	InputTokens  *int
	OutputTokens *int
	Total        *int
}

// Tokens returns the total when known, else input+output when both are
// known, else nil.
func (u Usage) Tokens() *int {
	if u.Total != nil {
		return u.Total
	}
	if u.InputTokens != nil && u.OutputTokens != nil {
		n := *u.InputTokens + *u.OutputTokens
		return &n
	}
	return nil
}

// Result is a normalized answer. It marshals to the JSON the web client
// reads as a generated document.
type Result struct {
	Content  string
	Provider Provider
	Model    string
	Duration time.Duration
	Usage    Usage
}

type resultJSON struct {
	Content  string  `json:"contenido"`
	Provider string  `json:"proveedor"`
	Model    string  `json:"modelo"`
	Seconds  float64 `json:"tiempo_generacion"`
	Tokens   *int    `json:"tokens_usados"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Content:  r.Content,
		Provider: r.Provider.String(),
		Model:    r.Model,
		Seconds:  math.Round(r.Duration.Seconds()*100) / 100,
		Tokens:   r.Usage.Tokens(),
	})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var rj resultJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	p, err := ParseProvider(rj.Provider)
	if err != nil {
		return err
	}
	*r = Result{
		Content:  rj.Content,
		Provider: p,
		Model:    rj.Model,
		Duration: time.Duration(rj.Seconds * float64(time.Second)),
		Usage:    Usage{Total: rj.Tokens},
	}
	return nil
}

// ProviderStatus is what /health reports for one provider.
type ProviderStatus struct {
	Configured  bool   `json:"configurado"`
	Initialized bool   `json:"inicializado"`
	Model       string `json:"modelo"`
}

// handler is one provider's HTTP client.
type handler interface {
	generate(ctx context.Context, req Request) (string, Usage, error)
	model() string
	close()
}
