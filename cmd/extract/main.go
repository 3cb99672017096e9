package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"examsearch/internal/classifier"
	"examsearch/internal/corpus"
	"examsearch/internal/exporter"
	"examsearch/internal/extractor"
	"examsearch/internal/pipeline"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "extract",
		Usage: "Split an exam PDF into per-question records and sub-documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pdf",
				Usage:    "Path to the source exam PDF",
				EnvVars:  []string{"EXAMSEARCH_SOURCE_PDF"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Source identifier stored on every record (default: PDF file name without extension)",
				EnvVars: []string{"EXAMSEARCH_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "id-prefix",
				Usage:   "Prefix of problem ids (default: source)",
				EnvVars: []string{"EXAMSEARCH_ID_PREFIX"},
			},
			&cli.StringFlag{
				Name:    "pdf-root",
				Usage:   "Directory sub-documents are written under",
				EnvVars: []string{"EXAMSEARCH_PDF_ROOT"},
				Value:   filepath.Join("data", "problems_pdf"),
			},
			&cli.StringFlag{
				Name:    "out",
				Usage:   "Corpus output file",
				EnvVars: []string{"EXAMSEARCH_DATA"},
				Value:   filepath.Join("data", "problems.json"),
			},
			&cli.StringFlag{
				Name:  "raw-out",
				Usage: "Raw segmentation dump",
				Value: filepath.Join("data", "problems_raw.json"),
			},
			&cli.StringFlag{
				Name:    "overrides",
				Usage:   "YAML file of per-ordinal tag/concept overrides (default: built-in table)",
				EnvVars: []string{"EXAMSEARCH_OVERRIDES"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	start := time.Now()

	pdfPath := c.String("pdf")
	source := c.String("source")
	if source == "" {
		source = strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	}

	overrides := classifier.DefaultOverrides()
	if path := c.String("overrides"); path != "" {
		o, err := classifier.LoadOverrides(path)
		if err != nil {
			return err
		}
		overrides = o
		log.Printf("Loaded %d classification overrides from %s", len(o), path)
	}

	doc, err := extractor.OpenPDF(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", pdfPath, err)
	}
	log.Printf("Loaded %s: %d pages (digest %s)", doc.Name, doc.PageCount(), doc.Digest)

	exp, err := exporter.NewPDFExporter(doc)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(doc, classifier.New(overrides), exp, pipeline.Options{
		Source:   source,
		IDPrefix: c.String("id-prefix"),
		PDFRoot:  c.String("pdf-root"),
	})
	if err != nil {
		return err
	}

	if err := corpus.WriteJSON(c.String("raw-out"), res.Raw); err != nil {
		return fmt.Errorf("failed to write raw dump: %w", err)
	}
	if err := corpus.WriteJSON(c.String("out"), res.Problems); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}

	for ord := range overrides {
		if ord > len(res.Problems) {
			log.Printf("Warning: override for question %d matches no detected marker", ord)
		}
	}

	log.Printf("markers: %d", res.Markers)
	log.Printf("problems: %d", len(res.Problems))
	log.Printf("raw -> %s", c.String("raw-out"))
	log.Printf("problems -> %s", c.String("out"))
	log.Printf("pdfs -> %s", filepath.Join(c.String("pdf-root"), source))
	log.Printf("Finished extraction in %v", time.Since(start))
	return nil
}
