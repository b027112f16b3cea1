// ingestfile runs one file through the full ingestion pipeline from
// the command line and prints the resulting report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dukabooks/dukabooks/internal/classify"
	"github.com/dukabooks/dukabooks/internal/common"
	"github.com/dukabooks/dukabooks/internal/extract"
	"github.com/dukabooks/dukabooks/internal/ingest"
	"github.com/dukabooks/dukabooks/internal/ledger"
	"github.com/dukabooks/dukabooks/internal/lexicon"
	"github.com/dukabooks/dukabooks/internal/normalize"
	"github.com/dukabooks/dukabooks/internal/ocr"
	"github.com/dukabooks/dukabooks/internal/pipeline"
	"github.com/dukabooks/dukabooks/internal/store"
)

func main() {
	business := flag.String("business", "default", "business id to ingest under")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() < 1 {
		logger.Error("usage: ingestfile [-business id] [-verbose] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error("reading file", "path", path, "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	lex, err := lexicon.Load(cfg.Lexicon.OverridePath)
	if err != nil {
		logger.Error("loading lexicon", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("opening store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	engine := ocr.NewEngine(ocr.Config{
		Pdftotext:   cfg.OCR.Pdftotext,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		DPI:         cfg.OCR.DPI,
		MaxPages:    cfg.OCR.MaxPages,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	remote := ocr.NewRemoteClient(cfg.OCR.RemoteURL, cfg.OCR.RemoteWait, logger)

	pl := pipeline.New(
		extract.NewExtractor(lex, engine, remote, logger),
		normalize.NewNormalizer(lex, logger),
		classify.NewClassifier(lex, logger),
		logger,
	)
	ledgerSvc := ledger.NewService(st, logger)
	svc := ingest.NewService(st, pl, ledgerSvc, logger)

	report, err := svc.Ingest(context.Background(), *business, filepath.Base(path), content)
	if err != nil {
		logger.Error("ingestion failed", "file", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("encoding report", "error", err)
		os.Exit(1)
	}
}
