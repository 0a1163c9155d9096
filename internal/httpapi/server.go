// Package httpapi exposes the toc loader over HTTP: one endpoint that
// resolves a TOC file and returns the published tree as JSON.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/doctoolkit/tocloader/internal/toc"
	charmlog "github.com/charmbracelet/log"
)

// Server wraps a toc.TocLoader behind an HTTP mux.
type Server struct {
	Loader *toc.TocLoader
	Log    *charmlog.Logger
}

// NewServer builds a Server around loader, with a default charmbracelet/log
// logger for request-level output.
func NewServer(loader *toc.TocLoader) *Server {
	return &Server{Loader: loader, Log: charmlog.Default()}
}

// Router builds the mux this server answers on.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/toc", s.handleLoad)
	return mux
}

type tocResponse struct {
	Node            *toc.TocNode `json:"node"`
	ReferencedFiles []string     `json:"referencedFiles"`
	ReferencedTocs  []string     `json:"referencedTocs"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" {
		http.Error(w, "missing required query parameter: file", http.StatusBadRequest)
		return
	}

	result, err := s.Loader.Load(r.Context(), toc.NewFilePath(file))
	if err != nil {
		s.Log.Error("load failed", "file", file, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := tocResponse{Node: result.Node}
	for _, d := range result.ReferencedFiles {
		resp.ReferencedFiles = append(resp.ReferencedFiles, d.FilePath.Path())
	}
	for _, d := range result.ReferencedTocs {
		resp.ReferencedTocs = append(resp.ReferencedTocs, d.FilePath.Path())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.Log.Error("encode response failed", "file", file, "err", err)
	}
}
