package api

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/dgallion1/docentia/internal/converter"
	"github.com/dgallion1/docentia/internal/export"
	"github.com/dgallion1/docentia/internal/requests"
)

type exportRequest struct {
	Content string `json:"contenido"`
	Title   string `json:"titulo"`
}

// readExport accepts a JSON body or, as older clients send it, query
// parameters.
func (s *Server) readExport(w http.ResponseWriter, r *http.Request) (exportRequest, error) {
	var in exportRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, &requests.DecodeError{Err: err}
		}
	}
	q := r.URL.Query()
	if in.Content == "" {
		in.Content = q.Get("contenido")
	}
	if in.Title == "" {
		in.Title = q.Get("titulo")
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		in.Title = export.DefaultTitle
	}
	return in, nil
}

func (s *Server) handleExportWord(w http.ResponseWriter, r *http.Request) {
	in, err := s.readExport(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(in.Content) == "" {
		jsonError(w, "contenido: es obligatorio", http.StatusBadRequest)
		return
	}

	doc := converter.Convert(in.Title, in.Content)
	var buf bytes.Buffer
	if err := export.WriteDOCX(&buf, doc); err != nil {
		s.log.Error("docx export failed", "title", in.Title, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	name := export.Filename(in.Title)
	s.log.Info("docx exported", "filename", name, "bytes", buf.Len(), "blocks", len(doc.Blocks))
	w.Header().Set("Content-Type", export.MediaTypeDOCX)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	in, err := s.readExport(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(in.Content) == "" {
		jsonError(w, "contenido: es obligatorio", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteHTML(&buf, in.Title, in.Content); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.MediaTypeHTML)
	_, _ = w.Write(buf.Bytes())
}
