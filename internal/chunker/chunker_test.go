package chunker

import (
	"strings"
	"testing"

	"github.com/dgallion1/docentia/internal/document"
)

func para(text string) document.Block {
	return document.Paragraph{Runs: []document.Run{{Text: text}}}
}

func h(level int, title string) document.Block {
	return document.Heading{Level: level, Content: title}
}

func docOf(blocks ...document.Block) *document.Document {
	d := document.New("Doc")
	for _, b := range blocks {
		d.Append(b)
	}
	return &d
}

func TestChunkDocument_SmallSectionFitsOneChunk(t *testing.T) {
	doc := docOf(h(1, "Section"), para(strings.Repeat("word ", 200)))

	chunks := ChunkDocument(doc, Config{ChunkSize: 1500, ChunkOverlap: 200, MinChunk: 50})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
	if chunks[0].Tokens != EstimateTokens(chunks[0].Text) {
		t.Errorf("expected cached token estimate %d, got %d", EstimateTokens(chunks[0].Text), chunks[0].Tokens)
	}
}

func TestChunkDocument_LargeSectionRequiresSplitting(t *testing.T) {
	// ~2700 words, ~3600 tokens.
	large := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 300)
	doc := docOf(h(1, "Big Section"), para(large))

	cfg := Config{ChunkSize: 500, ChunkOverlap: 50, MinChunk: 10}
	chunks := ChunkDocument(doc, cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks for large text, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		// Sentence boundaries allow slight overflow.
		if tokens := EstimateTokens(c.Text); tokens > cfg.ChunkSize*2 {
			t.Errorf("chunk %d: %d tokens exceeds 2x target %d", i, tokens, cfg.ChunkSize)
		}
	}
}

func TestChunkDocument_BreadcrumbPropagation(t *testing.T) {
	doc := docOf(
		h(1, "Chapter 1"),
		h(2, "Section 1.1"),
		para(strings.Repeat("content ", 200)),
	)

	chunks := ChunkDocument(doc, Config{ChunkSize: 2000, ChunkOverlap: 100, MinChunk: 10})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	want := []string{"Chapter 1", "Section 1.1"}
	if strings.Join(chunks[0].Breadcrumb, "/") != strings.Join(want, "/") {
		t.Fatalf("expected breadcrumb %v, got %v", want, chunks[0].Breadcrumb)
	}
}

func TestChunkDocument_BreadcrumbIsolation(t *testing.T) {
	doc := docOf(
		h(1, "A"), para(strings.Repeat("alpha ", 200)),
		h(2, "A.1"), para(strings.Repeat("uno ", 200)),
		h(1, "B"), para(strings.Repeat("beta ", 200)),
	)

	chunks := ChunkDocument(doc, Config{ChunkSize: 2000, ChunkOverlap: 100, MinChunk: 10})

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	want := []string{"A", "A/A.1", "B"}
	for i, w := range want {
		if got := strings.Join(chunks[i].Breadcrumb, "/"); got != w {
			t.Errorf("chunk %d breadcrumb: expected %q, got %q", i, w, got)
		}
	}
}

func TestChunkDocument_ListsJoinSection(t *testing.T) {
	doc := docOf(
		h(1, "Materiales"),
		document.BulletItem{Content: "Lupa"},
		document.NumberedItem{Content: "Cuaderno"},
	)
	chunks := ChunkDocument(doc, Config{MinChunk: 1})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "- Lupa\n\n- Cuaderno" {
		t.Errorf("unexpected chunk text %q", chunks[0].Text)
	}
}

func TestChunkDocument_MinChunkFiltering(t *testing.T) {
	doc := docOf(h(1, "Short"), para("Hi"))
	chunks := ChunkDocument(doc, Config{ChunkSize: 1500, ChunkOverlap: 200, MinChunk: 100})
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks (below MinChunk), got %d", len(chunks))
	}
}

func TestChunkDocument_Empty(t *testing.T) {
	if chunks := ChunkDocument(docOf(), DefaultConfig()); len(chunks) != 0 {
		t.Errorf("expected 0 chunks, got %d", len(chunks))
	}
	if chunks := ChunkDocument(nil, DefaultConfig()); chunks != nil {
		t.Errorf("expected nil for nil document, got %v", chunks)
	}
}

func TestChunkDocument_DefaultConfigFallback(t *testing.T) {
	doc := docOf(para(strings.Repeat("word ", 200)))
	chunks := ChunkDocument(doc, Config{})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk with zero config, got %d", len(chunks))
	}
	if chunks[0].Breadcrumb != nil {
		t.Errorf("expected no breadcrumb before any heading, got %v", chunks[0].Breadcrumb)
	}
}

func TestFitBudget(t *testing.T) {
	chunks := []Chunk{
		{Text: strings.Repeat("a ", 30), Tokens: 39},
		{Text: strings.Repeat("b ", 30), Tokens: 39},
		{Text: strings.Repeat("c ", 30)},
	}
	if got := FitBudget(chunks, 100); len(got) != 2 {
		t.Fatalf("expected 2 chunks within budget, got %d", len(got))
	}
	if got := FitBudget(chunks, 200); len(got) != 3 {
		t.Fatalf("expected all chunks within budget, got %d", len(got))
	}
	if got := FitBudget(chunks, 10); len(got) != 0 {
		t.Fatalf("expected no chunks for tiny budget, got %d", len(got))
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Hola. ¿Qué tal? Bien! Fin")
	want := []string{"Hola.", "¿Qué tal?", "Bien!", "Fin"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"uno", 1},
		{"uno dos tres", 3},
		{strings.Repeat("w ", 100), 133},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.in); got != tt.want {
			t.Errorf("EstimateTokens(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
