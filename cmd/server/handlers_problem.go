package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path"
	"strings"

	"examsearch/internal/corpus"
	"examsearch/internal/exporter"
	"examsearch/internal/retriever"
)

// ========== Problem Endpoints ==========

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, prefix string) (corpus.Problem, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	p, ok := s.retriever.Get(id)
	if !ok || id == "" {
		jsonErr(w, "Problem not found", http.StatusNotFound)
		return corpus.Problem{}, false
	}
	return p, true
}

func (s *Server) handleProblemJSON(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	p, ok := s.lookup(w, r, "/api/problems/")
	if !ok {
		return
	}
	jsonResp(w, p)
}

func (s *Server) handleProblemPage(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	p, ok := s.lookup(w, r, "/problems/")
	if !ok {
		return
	}
	s.render(w, "problem", p)
}

// ========== Pages ==========

type searchPage struct {
	Query    string
	Filter   retriever.Filter
	Sources  []string
	Searched bool
	Results  []retriever.Result
}

func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonErr(w, "Not found", http.StatusNotFound)
		return
	}
	if !allowGet(w, r) {
		return
	}

	data := searchPage{
		Query:   r.URL.Query().Get("q"),
		Filter:  filterFromRequest(r),
		Sources: s.retriever.Corpus().Sources(),
	}
	// A filter alone lists every matching problem.
	if data.Query != "" || !data.Filter.IsZero() {
		data.Searched = true
		data.Results = s.retriever.Search(data.Query, data.Filter)
	}
	s.render(w, "search", data)
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
	}
}

// ========== Sub-documents ==========

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, "/pdf/")
	full, err := exporter.Resolve(s.pdfRoot, rel)
	if err != nil {
		if errors.Is(err, exporter.ErrInvalidPath) || errors.Is(err, exporter.ErrOutsideRoot) {
			jsonErr(w, "Invalid path", http.StatusBadRequest)
			return
		}
		log.Printf("Failed to resolve %q: %v", rel, err)
		jsonErr(w, "Internal error", http.StatusInternalServerError)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		jsonErr(w, "File not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		jsonErr(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+path.Base(rel)+`"`)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
