package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukabooks/dukabooks/internal/classify"
	"github.com/dukabooks/dukabooks/internal/common"
	"github.com/dukabooks/dukabooks/internal/extract"
	"github.com/dukabooks/dukabooks/internal/ingest"
	"github.com/dukabooks/dukabooks/internal/ledger"
	"github.com/dukabooks/dukabooks/internal/lexicon"
	"github.com/dukabooks/dukabooks/internal/normalize"
	"github.com/dukabooks/dukabooks/internal/ocr"
	"github.com/dukabooks/dukabooks/internal/pipeline"
	"github.com/dukabooks/dukabooks/internal/pos"
	"github.com/dukabooks/dukabooks/internal/review"
	"github.com/dukabooks/dukabooks/internal/server"
	"github.com/dukabooks/dukabooks/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	lex, err := lexicon.Load(cfg.Lexicon.OverridePath)
	if err != nil {
		logger.Error("loading lexicon", "path", cfg.Lexicon.OverridePath, "error", err)
		os.Exit(2)
	}

	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("opening store", "path", cfg.Store.Path, "error", err)
		os.Exit(2)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()

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
	ingestSvc := ingest.NewService(st, pl, ledgerSvc, logger)
	reviewSvc := review.NewService(st, logger)
	posSvc := pos.NewService(st, ledgerSvc, logger)

	api := server.New(ingestSvc, ledgerSvc, reviewSvc, posSvc, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server.listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server.failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server.shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown_failed", "error", err)
	}
}
