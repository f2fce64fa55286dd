package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/docentia/internal/llm"
	"github.com/dgallion1/docentia/internal/pipeline"
	"github.com/dgallion1/docentia/internal/prompts"
	"github.com/dgallion1/docentia/internal/requests"
	"github.com/go-chi/chi/v5"
)

// maxBatch caps the number of requests in one /api/generar/lote call.
const maxBatch = 10

// envelope is the response body of every successful generation.
type envelope struct {
	Success   bool          `json:"success"`
	Data      *llm.Result   `json:"data,omitempty"`
	Message   string        `json:"message"`
	Title     string        `json:"titulo,omitempty"`
	Kind      requests.Kind `json:"tipo,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Error     string        `json:"error,omitempty"`
}

func (s *Server) envelopeFor(g pipeline.Generation) envelope {
	return envelope{
		Success:   true,
		Data:      &g.Data,
		Message:   g.Message,
		Title:     g.Title,
		Kind:      g.Kind,
		Timestamp: s.now(),
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	kind, err := requests.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	s.generate(w, r, kind)
}

func (s *Server) handleEmergency(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, requests.KindEmergencia)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, kind requests.Kind) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	req, err := requests.Decode(kind, r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	gen, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		s.log.Error("generation failed", "kind", kind, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.envelopeFor(gen))
}

type batchRequest struct {
	Requests []struct {
		Kind string          `json:"tipo"`
		Data json.RawMessage `json:"datos"`
	} `json:"solicitudes"`
}

func (s *Server) handleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, &requests.DecodeError{Err: err})
		return
	}
	if len(body.Requests) == 0 {
		jsonError(w, "solicitudes: es obligatorio", http.StatusBadRequest)
		return
	}
	if len(body.Requests) > maxBatch {
		jsonError(w, fmt.Sprintf("solicitudes: como máximo %d por lote", maxBatch), http.StatusBadRequest)
		return
	}

	// Invalid items are answered in place; the rest run together.
	results := make([]envelope, len(body.Requests))
	var (
		valid []requests.Request
		slots []int
	)
	for i, item := range body.Requests {
		kind, err := requests.ParseKind(item.Kind)
		if err == nil {
			var req requests.Request
			if req, err = requests.DecodeRaw(kind, item.Data); err == nil {
				valid = append(valid, req)
				slots = append(slots, i)
				continue
			}
		}
		results[i] = envelope{Kind: kind, Message: "Solicitud no válida", Error: requests.Describe(err), Timestamp: s.now()}
	}

	for j, item := range s.generator.GenerateBatch(r.Context(), valid) {
		i := slots[j]
		if item.Err != nil {
			results[i] = envelope{Kind: valid[j].Kind(), Message: "Error al generar", Error: item.Err.Error(), Timestamp: s.now()}
			continue
		}
		results[i] = s.envelopeFor(item.Generation)
	}

	writeJSON(w, http.StatusOK, map[string]any{"resultados": results})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	p := prompts.Probe()
	res, err := s.llm.Generate(r.Context(), llm.Request{
		System:      p.System,
		User:        p.User,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"provider": res.Provider.String(),
		"model":    res.Model,
		"response": res.Content,
	})
}
