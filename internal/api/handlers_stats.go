package api

import (
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"provider": s.llm.Active().String(),
		"model":    s.llm.Model(),
		"stats":    s.llm.Stats(),
	})
}
