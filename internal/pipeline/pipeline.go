// Package pipeline chains extraction, normalization, classification,
// deduplication, and risk routing into the single per-file entry
// point the transport layer calls.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dukabooks/dukabooks/constants"
	"github.com/dukabooks/dukabooks/internal/classify"
	"github.com/dukabooks/dukabooks/internal/dedupe"
	"github.com/dukabooks/dukabooks/internal/extract"
	"github.com/dukabooks/dukabooks/internal/normalize"
)

type Pipeline struct {
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	classifier *classify.Classifier
	logger     *slog.Logger
}

func New(ex *extract.Extractor, nm *normalize.Normalizer, cl *classify.Classifier, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{extractor: ex, normalizer: nm, classifier: cl, logger: logger}
}

// RunFromText processes one file end to end. existingKeys seeds the
// deduplicator with row keys already persisted, so reprocessing an
// identical file only increments the duplicate counter.
//
// Extraction failures are reported inside the outcome, not as an
// error return; the error is non-nil only for infrastructure faults.
func (p *Pipeline) RunFromText(ctx context.Context, fileName string, content []byte, existingKeys []string) (Outcome, error) {
	out := Outcome{
		FileName:    fileName,
		Warnings:    []string{},
		Errors:      []string{},
		Suggestions: []string{},
	}

	matrix, err := p.extractor.Extract(ctx, fileName, content)
	if err != nil {
		var exErr *extract.Error
		if errors.As(err, &exErr) {
			out.Errors = append(out.Errors, exErr.Error())
			p.logger.Warn("pipeline.extract_failed", "file", fileName, "kind", exErr.Kind)
			return out, nil
		}
		return out, err
	}

	res := p.normalizer.Normalize(matrix)
	out.RowsSkipped = res.RowsSkipped
	for _, note := range res.Warnings {
		out.Warnings = append(out.Warnings, note.String())
	}
	out.Suggestions = append(out.Suggestions, res.Suggestions...)

	deduper := dedupe.NewDeduper(existingKeys)
	for _, rec := range res.Records {
		rowKey := dedupe.RowKey(rec.Date, rec.CashIn, rec.CashOut, rec.Orders, fileName, rec.RowNumber)
		if !deduper.Admit(rowKey) {
			out.DuplicatesSkipped++
			continue
		}
		out.RowsProcessed++
		p.route(&out, p.classifier.Classify(rec, fileName), rowKey)
	}

	out.BoundLists()

	p.logger.Info("pipeline.completed",
		"file", fileName,
		"rows", out.RowsProcessed,
		"skipped", out.RowsSkipped,
		"duplicates", out.DuplicatesSkipped)
	return out, nil
}

// route stamps trace keys and partitions candidates. Transactions are
// never risk-routed: cash movements are recorded immediately while
// descriptive metadata can wait for confirmation.
func (p *Pipeline) route(out *Outcome, set classify.Set, rowKey string) {
	if tx := set.Transaction; tx != nil {
		suffix := dedupe.SuffixIn
		if tx.Direction == constants.DirectionOut {
			suffix = dedupe.SuffixOut
		}
		tx.TraceKey = rowKey + suffix
		out.Trusted.Transactions = append(out.Trusted.Transactions, *tx)
	}
	if pr := set.Product; pr != nil {
		pr.TraceKey = rowKey + dedupe.SuffixProduct
		if pr.Risk == constants.RiskTrusted {
			out.Trusted.Products = append(out.Trusted.Products, *pr)
		} else {
			out.Review.Products = append(out.Review.Products, *pr)
		}
	}
	if cl := set.Client; cl != nil {
		cl.TraceKey = rowKey + dedupe.SuffixClient
		if cl.Risk == constants.RiskTrusted {
			out.Trusted.Clients = append(out.Trusted.Clients, *cl)
		} else {
			out.Review.Clients = append(out.Review.Clients, *cl)
		}
	}
	if sp := set.Supplier; sp != nil {
		sp.TraceKey = rowKey + dedupe.SuffixSupplier
		if sp.Risk == constants.RiskTrusted {
			out.Trusted.Suppliers = append(out.Trusted.Suppliers, *sp)
		} else {
			out.Review.Suppliers = append(out.Review.Suppliers, *sp)
		}
	}
}
