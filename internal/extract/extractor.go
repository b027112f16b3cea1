package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/lexicon"
	"github.com/dukabooks/dukabooks/internal/ocr"
)

// Extractor turns a named upload into a Matrix, choosing a strategy
// from the file extension and falling through OCR tiers for documents.
type Extractor struct {
	lex    *lexicon.Lexicon
	engine *ocr.Engine
	remote *ocr.RemoteClient
	logger *slog.Logger
}

func NewExtractor(lex *lexicon.Lexicon, engine *ocr.Engine, remote *ocr.RemoteClient, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{lex: lex, engine: engine, remote: remote, logger: logger}
}

// Extract parses fileName/content into a Matrix.
func (e *Extractor) Extract(ctx context.Context, fileName string, content []byte) (Matrix, error) {
	format := constants.FormatForFile(fileName)
	if format == constants.UNKNOWN {
		return Matrix{}, newError(UnsupportedFormat, fileName,
			fmt.Errorf("use .csv, .tsv, .txt, .json, .xlsx, .xls, .pdf, .png, .jpg, .jpeg, or .webp"))
	}
	if len(content) == 0 || (format != constants.WORKBOOK && strings.TrimSpace(string(content)) == "") {
		return Matrix{}, newError(EmptyFile, fileName, nil)
	}

	var (
		grid         [][]string
		fallbackText string
	)

	switch format {
	case constants.CSV:
		text := string(content)
		fallbackText = text
		grid = e.structuredText(text, ',')
	case constants.TEXT:
		text := string(content)
		fallbackText = text
		grid = e.structuredText(text, '\t')
	case constants.WORKBOOK:
		var err error
		grid, err = e.workbook(content)
		if err != nil {
			return Matrix{}, newError(NoUsableRows, fileName, err)
		}
	case constants.PDF, constants.IMAGE:
		text, err := e.documentText(ctx, fileName, content, format)
		if err != nil {
			return Matrix{}, newError(NoUsableRows, fileName, err)
		}
		fallbackText = text
		grid = gridFromText(text)
	}

	// Loose-matrix fallback for thin or low-structure results.
	if len(grid) < 2 || lowStructure(grid) {
		if loose := gridFromLooseText(fallbackText, e.lex, format == constants.IMAGE); len(loose) >= 2 {
			e.logger.Debug("extract.loose_fallback", "file", fileName, "rows", len(loose)-1)
			grid = loose
		}
	}

	if len(grid) < 2 {
		return Matrix{}, newError(NoUsableRows, fileName, fmt.Errorf("no data rows"))
	}
	m := fromGrid(grid)
	if m.Empty() {
		return Matrix{}, newError(NoUsableRows, fileName, fmt.Errorf("only empty rows"))
	}
	return m, nil
}

// structuredText sniffs for a JSON export, otherwise parses delimited
// text.
func (e *Extractor) structuredText(text string, delim byte) [][]string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if grid := gridFromJSON(trimmed); len(grid) > 0 {
			return grid
		}
	}
	return ParseDelimited(text, delim)
}

func (e *Extractor) workbook(content []byte) ([][]string, error) {
	if looksLikeSpreadsheetXML(content) {
		if grid := gridFromSpreadsheetXML(content); len(grid) > 0 {
			return grid, nil
		}
	}
	return gridFromWorkbook(content)
}

// documentText runs the tiered extraction chain for PDFs and images:
// text layer first for PDFs, then remote OCR when configured, then the
// local OCR sweep. Every tier's failure surfaces as a debug log and a
// fall-through; only exhausting all tiers is an error.
func (e *Extractor) documentText(ctx context.Context, fileName string, content []byte, format constants.FileFormat) (string, error) {
	path, cleanup, err := spool(fileName, content)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if format == constants.PDF {
		if res, err := e.engine.PDFText(ctx, path); err == nil && strings.TrimSpace(res.Text) != "" {
			return ocr.Normalize(res.Text, e.lex), nil
		} else if err != nil {
			e.logger.Debug("extract.pdf_text.failed", "file", fileName, "error", err)
		}
		res, err := e.engine.PDFOCR(ctx, path)
		if err != nil {
			return "", fmt.Errorf("pdf ocr: %w", err)
		}
		return ocr.Normalize(res.Text, e.lex), nil
	}

	if e.remote.Configured() {
		if text, err := e.remote.Recognize(ctx, fileName, content); err == nil {
			return ocr.Normalize(text, e.lex), nil
		} else {
			e.logger.Debug("extract.remote_ocr.failed", "file", fileName, "error", err)
		}
	}
	res, err := e.engine.ImageOCR(ctx, path)
	if err != nil {
		return "", fmt.Errorf("image ocr: %w", err)
	}
	return ocr.Normalize(res.Text, e.lex), nil
}

// spool writes upload bytes to a temp file for the exec-based OCR
// binaries, preserving the extension.
func spool(fileName string, content []byte) (string, func(), error) {
	dir, err := os.MkdirTemp("", "db-upload-*")
	if err != nil {
		return "", func() {}, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	path := filepath.Join(dir, "upload"+strings.ToLower(filepath.Ext(fileName)))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		cleanup()
		return "", func() {}, err
	}
	return path, cleanup, nil
}
