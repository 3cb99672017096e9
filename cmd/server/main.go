package main

import (
	"log"
	"net"
	"net/http"
	"time"

	"examsearch/internal/corpus"
	"examsearch/internal/indexer"
	"examsearch/internal/retriever"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	c, err := corpus.Load(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Printf("Loaded %d problems from %s", c.Len(), cfg.DataPath)

	idx, err := indexer.Build(c)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}
	defer idx.Close()

	srv := newServer(retriever.NewRetriever(c, idx), cfg.PDFRoot)

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Exam search server starting on http://%s (pdf root %s)", addr, cfg.PDFRoot)
	if err := httpSrv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
