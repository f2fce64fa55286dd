package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docentia/internal/chunker"
	"github.com/dgallion1/docentia/internal/config"
	"github.com/dgallion1/docentia/internal/llm"
	"github.com/dgallion1/docentia/internal/parser"
	"github.com/dgallion1/docentia/internal/prompts"
	"github.com/dgallion1/docentia/internal/requests"
	"golang.org/x/sync/errgroup"
)

// Dispatcher is the part of llm.Dispatcher the generator needs.
type Dispatcher interface {
	Generate(ctx context.Context, req llm.Request) (llm.Result, error)
}

// Generation is a finished document plus the labels the API returns with it.
type Generation struct {
	Data    llm.Result    `json:"data"`
	Message string        `json:"message"`
	Title   string        `json:"titulo"`
	Kind    requests.Kind `json:"tipo"`
}

// BatchItem is one entry of GenerateBatch, in input order.
type BatchItem struct {
	Generation Generation
	Err        error
}

// Generator runs requests against the dispatcher. It is shared by the HTTP
// handlers, the async workers and the CLI.
type Generator struct {
	llm           Dispatcher
	log           *slog.Logger
	chunkCfg      chunker.Config
	budget        int
	maxConcurrent int
}

func NewGenerator(d Dispatcher, cfg config.Config, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		llm: d,
		log: log.With("component", "generator"),
		chunkCfg: chunker.Config{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		},
		budget:        cfg.MaterialTokenBudget,
		maxConcurrent: max(cfg.MaxConcurrentGenerations, 1),
	}
}

// Prompt builds the full prompt for req, including any reference material.
func (g *Generator) Prompt(req requests.Request) (prompts.Prompt, error) {
	p := prompts.For(req)
	material := req.Material()
	if material == "" || g.budget <= 0 {
		return p, nil
	}
	doc, err := parser.ParseText("material", material)
	if err != nil {
		return p, fmt.Errorf("parse material: %w", err)
	}
	chunks := chunker.ChunkDocument(doc, g.chunkCfg)
	return prompts.WithMaterial(p, chunks, g.budget), nil
}

// Generate runs one request.
func (g *Generator) Generate(ctx context.Context, req requests.Request) (Generation, error) {
	p, err := g.Prompt(req)
	if err != nil {
		return Generation{}, err
	}

	g.log.Info("generating", "kind", req.Kind(), "subject", req.Subject(), "material", req.Material() != "")
	res, err := g.llm.Generate(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		return Generation{}, fmt.Errorf("generate %s: %w", req.Kind(), err)
	}
	return Generation{Data: res, Message: p.Message, Title: p.Title, Kind: req.Kind()}, nil
}

// GenerateBatch runs several requests with bounded concurrency. A failing
// item does not cancel the others.
func (g *Generator) GenerateBatch(ctx context.Context, reqs []requests.Request) []BatchItem {
	items := make([]BatchItem, len(reqs))

	var eg errgroup.Group
	eg.SetLimit(g.maxConcurrent)
	for i, req := range reqs {
		i, req := i, req
		eg.Go(func() error {
			gen, err := g.Generate(ctx, req)
			items[i] = BatchItem{Generation: gen, Err: err}
			return nil
		})
	}
	_ = eg.Wait()

	return items
}
