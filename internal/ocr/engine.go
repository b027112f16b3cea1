package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Config tunes the local OCR engine.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang     string // default "eng"
	DPI      int    // rasterization DPI for scanned PDFs, default 300
	MaxPages int    // pages OCRed per PDF, 0 = no limit

	TessdataDir string

	// Page-segmentation modes swept per image variant. 6 = uniform
	// block, 11 = sparse text, 4 = single column.
	PSMs []int
}

// Result summarizes one extraction run.
type Result struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Duration time.Duration
	Warnings []string
}

// Engine extracts text from PDFs and images via external binaries.
type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if len(cfg.PSMs) == 0 {
		cfg.PSMs = []int{6, 11, 4}
	}
	return &Engine{cfg: cfg, runner: execRunner{}, logger: logger}
}

// PDFText runs the text-layer tier: pdftotext over an embedded text
// layer. Returns empty text (no error) for scanned PDFs.
func (e *Engine) PDFText(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return Result{Warnings: []string{string(errb)}}, fmt.Errorf("pdftotext: %w", err)
	}
	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")
	return Result{Text: text, Pages: pages, Method: "pdf-text", Duration: time.Since(start)}, nil
}

// PDFOCR runs the raster tier: pdftoppm renders each page to PNG, then
// every page goes through the image sweep.
func (e *Engine) PDFOCR(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	tmpDir, err := os.MkdirTemp("", "db-pp-*")
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return Result{Warnings: []string{string(errb)}}, fmt.Errorf("pdftoppm: %w", err)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return Result{Warnings: []string{"pdftoppm produced no images"}}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		res, err := e.ImageOCR(ctx, img)
		warns = append(warns, res.Warnings...)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(res.Text)
	}
	return Result{
		Text:     b.String(),
		Pages:    len(matches),
		Method:   "pdf-ocr",
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

// ImageOCR runs the robust sweep for one image: several preprocessed
// variants, each recognized under every configured page-segmentation
// mode, merged by exact-line frequency to drop one-off misreads.
func (e *Engine) ImageOCR(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	variants, cleanup, warns := buildVariants(path, e.logger)
	defer cleanup()

	var blocks []string
	for _, variant := range variants {
		for _, psm := range e.cfg.PSMs {
			txt, w, err := e.tesseract(ctx, variant, psm)
			warns = append(warns, w...)
			if err != nil {
				warns = append(warns, err.Error())
				continue
			}
			if txt = strings.TrimSpace(txt); txt != "" {
				blocks = append(blocks, txt)
			}
		}
	}
	if len(blocks) == 0 {
		return Result{Method: "image-ocr", Warnings: warns, Duration: time.Since(start)},
			fmt.Errorf("ocr produced no text for %s", filepath.Base(path))
	}

	return Result{
		Text:     MergeLines(blocks),
		Pages:    1,
		Method:   "image-ocr",
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

func (e *Engine) tesseract(ctx context.Context, path string, psm int) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.cfg.Lang}
	if psm > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", psm))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang> --psm <n>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}
