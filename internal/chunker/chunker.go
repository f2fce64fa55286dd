// Package chunker cuts reference material into heading-aware pieces sized
// for a prompt.
package chunker

import (
	"strings"

	"github.com/dgallion1/docentia/internal/document"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in tokens.
	ChunkOverlap int // Overlap between consecutive chunks in tokens.
	MinChunk     int // Minimum chunk size to emit.
}

// DefaultConfig suits pasted classroom material, which is often short.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    800,
		ChunkOverlap: 80,
		MinChunk:     5,
	}
}

// Chunk is a sized text segment with its heading context.
type Chunk struct {
	Text       string
	Index      int
	Breadcrumb []string // e.g. ["Tema 3", "La fotosíntesis"]
	Tokens     int
}

type heading struct {
	level int
	title string
}

// ChunkDocument walks the blocks of doc and produces structure-aware chunks.
// Each heading closes the running section; the level-0 title heading is not
// part of any breadcrumb.
func ChunkDocument(doc *document.Document, cfg Config) []Chunk {
	def := DefaultConfig()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.ChunkOverlap <= 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = min(def.ChunkOverlap, cfg.ChunkSize/4)
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = def.MinChunk
	}
	if doc == nil {
		return nil
	}

	var (
		chunks  []Chunk
		stack   []heading
		section strings.Builder
	)

	flush := func() {
		text := strings.TrimSpace(section.String())
		section.Reset()
		if text == "" {
			return
		}
		bc := breadcrumb(stack)
		parts := []string{text}
		if EstimateTokens(text) > cfg.ChunkSize {
			parts = splitText(text, cfg.ChunkSize, cfg.ChunkOverlap)
		}
		for _, part := range parts {
			tokens := EstimateTokens(part)
			if tokens < cfg.MinChunk {
				continue
			}
			chunks = append(chunks, Chunk{
				Text:       part,
				Index:      len(chunks),
				Breadcrumb: copyBreadcrumb(bc),
				Tokens:     tokens,
			})
		}
	}

	for _, b := range doc.Blocks {
		switch blk := b.(type) {
		case document.Heading:
			if blk.Level == 0 {
				continue
			}
			flush()
			for len(stack) > 0 && stack[len(stack)-1].level >= blk.Level {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, heading{level: blk.Level, title: blk.Content})
		default:
			t := blockText(b)
			if t == "" {
				continue
			}
			if section.Len() > 0 {
				section.WriteString("\n\n")
			}
			section.WriteString(t)
		}
	}
	flush()

	return chunks
}

// FitBudget returns the leading chunks whose estimated tokens fit in budget.
func FitBudget(chunks []Chunk, budget int) []Chunk {
	used := 0
	for i, c := range chunks {
		tokens := c.Tokens
		if tokens == 0 {
			tokens = EstimateTokens(c.Text)
		}
		if used+tokens > budget {
			return chunks[:i]
		}
		used += tokens
	}
	return chunks
}

func blockText(b document.Block) string {
	t := strings.TrimSpace(b.Text())
	if t == "" {
		return ""
	}
	switch b.(type) {
	case document.BulletItem, document.NumberedItem:
		return "- " + t
	}
	return t
}

func breadcrumb(stack []heading) []string {
	out := make([]string, len(stack))
	for i, h := range stack {
		out[i] = h.title
	}
	return out
}

// splitText breaks text into pieces of about targetTokens. Paragraph
// boundaries are preferred; a paragraph larger than the target is split on
// sentence boundaries instead.
func splitText(text string, targetTokens, overlapTokens int) []string {
	var units []string
	var out []string
	flushUnits := func() {
		out = append(out, pack(units, "\n\n", targetTokens, overlapTokens)...)
		units = units[:0]
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if EstimateTokens(para) > targetTokens {
			flushUnits()
			out = append(out, pack(splitSentences(para), " ", targetTokens, overlapTokens)...)
			continue
		}
		units = append(units, para)
	}
	flushUnits()
	return out
}

// pack greedily joins units with sep until the next one would exceed
// targetTokens. Each new piece starts with the tail of the previous one.
func pack(units []string, sep string, targetTokens, overlapTokens int) []string {
	var (
		result  []string
		current strings.Builder
		tokens  int
	)
	for _, u := range units {
		n := EstimateTokens(u)
		if tokens+n > targetTokens && tokens > 0 {
			result = append(result, current.String())
			overlap := overlapTail(current.String(), overlapTokens)
			current.Reset()
			current.WriteString(overlap)
			tokens = EstimateTokens(overlap)
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(u)
		tokens += n
	}
	if tokens > 0 {
		result = append(result, current.String())
	}
	return result
}

// splitSentences splits after '.', '!' or '?' followed by a space.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] == ' ' {
				if s := strings.TrimSpace(text[start : i+1]); s != "" {
					sentences = append(sentences, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// overlapTail returns the last overlapTokens worth of words of text, or ""
// when text is not longer than that.
func overlapTail(text string, overlapTokens int) string {
	words := strings.Fields(text)
	n := int(float64(overlapTokens) / tokensPerWord)
	if n <= 0 || len(words) <= n {
		return ""
	}
	return strings.Join(words[len(words)-n:], " ")
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
