package main

import (
	"encoding/json"
	"html/template"
	"net/http"
	"os"
	"strings"

	"examsearch/internal/retriever"
)

// Server holds the state shared by all handlers. Everything it points to
// is built before the listener starts and never modified afterwards.
type Server struct {
	retriever *retriever.Retriever
	pdfRoot   string
	pages     *template.Template
}

// Config is read from the environment (and .env) at startup.
type Config struct {
	Host     string
	Port     string
	DataPath string
	PDFRoot  string
}

func loadConfig() Config {
	return Config{
		Host:     getenv("EXAMSEARCH_HOST", "127.0.0.1"),
		Port:     getenv("PORT", "8000"),
		DataPath: getenv("EXAMSEARCH_DATA", "data/problems.json"),
		PDFRoot:  getenv("EXAMSEARCH_PDF_ROOT", "data/problems_pdf"),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func newServer(ret *retriever.Retriever, pdfRoot string) *Server {
	return &Server{
		retriever: ret,
		pdfRoot:   pdfRoot,
		pages:     template.Must(template.New("pages").Funcs(pageFuncs).Parse(pageTemplates)),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/keyword", s.handleKeyword)
	mux.HandleFunc("/api/problems/", s.handleProblemJSON)
	mux.HandleFunc("/api/stats", s.handleStats)

	mux.HandleFunc("/problems/", s.handleProblemPage)
	mux.HandleFunc("/pdf/", s.handlePDF)
	mux.HandleFunc("/", s.handleSearchPage)

	return corsMiddleware(mux)
}

// ========== Middleware ==========

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ========== Helpers ==========

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// listParam collects a multi-valued query parameter. Values may repeat
// the key or be comma separated; blanks are dropped.
func listParam(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func jsonResp(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
