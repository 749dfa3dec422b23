package notes

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/statementlens/pnlextract/internal/pdfdoc"
	"github.com/statementlens/pnlextract/internal/tables"
)

// minTableItems is the item count below which the engine result is
// checked against the text parser, keeping whichever found more.
const minTableItems = 3

// Extractor pulls a note breakup using the table engines first and the
// text parser as the safety net.
type Extractor struct {
	primary  *tables.StructuredEngine
	fallback *tables.LayoutEngine
	logger   *slog.Logger
}

// NewExtractor wires the engines together. primary may be nil.
func NewExtractor(primary *tables.StructuredEngine, fallback *tables.LayoutEngine, logger *slog.Logger) *Extractor {
	return &Extractor{primary: primary, fallback: fallback, logger: logger}
}

// Extract reads the note breakup starting at notePage. Notes span
// pages, so the subset covers up to three. A thin engine result is
// compared against the raw-text parse and the richer one wins.
func (e *Extractor) Extract(ctx context.Context, doc *pdfdoc.Document, notePage int, noteNumber string) (Breakup, error) {
	pages := []int{notePage}
	for _, p := range []int{notePage + 1, notePage + 2} {
		if p < doc.PageCount() {
			pages = append(pages, p)
		}
	}

	breakup := e.extractFromEngines(ctx, doc, pages, noteNumber)

	if len(breakup.Items) < minTableItems {
		textBreakup := ParseFromText(doc.PageTexts(), notePage, noteNumber)
		if len(textBreakup.Items) > len(breakup.Items) {
			e.logger.Info("notes.text_fallback_preferred",
				slog.Int("engine_items", len(breakup.Items)),
				slog.Int("text_items", len(textBreakup.Items)))
			breakup = textBreakup
		}
	}

	if len(breakup.Items) == 0 {
		return Breakup{}, fmt.Errorf("no line items found for note %s on pages %d-%d", noteNumber, notePage+1, pages[len(pages)-1]+1)
	}

	e.logger.Info("notes.extracted",
		slog.String("note", noteNumber),
		slog.Int("items", len(breakup.Items)),
		slog.Bool("has_total", breakup.Total != nil))
	return breakup, nil
}

// extractFromEngines runs the engines over a page subset and parses
// the best note table. Engine failures degrade to an empty breakup;
// the text fallback still gets its chance.
func (e *Extractor) extractFromEngines(ctx context.Context, doc *pdfdoc.Document, pages []int, noteNumber string) Breakup {
	subset, err := doc.WritePageSubset(pages)
	if err != nil {
		e.logger.Warn("notes.subset_failed", slog.String("error", err.Error()))
		return Breakup{}
	}
	defer os.Remove(subset)

	found := e.runEngines(ctx, subset)
	if len(found) == 0 {
		return Breakup{}
	}

	idx := tables.BestNoteTable(found, noteNumber)
	if idx < 0 {
		return Breakup{}
	}
	return ParseFromTable(found[idx], noteNumber)
}

func (e *Extractor) runEngines(ctx context.Context, subset string) []tables.Table {
	if e.primary != nil {
		found, err := e.primary.Extract(ctx, subset, false)
		if err == nil && len(found) == 0 {
			found, err = e.primary.Extract(ctx, subset, true)
		}
		if err != nil {
			e.logger.Warn("notes.structured_failed", slog.String("error", err.Error()))
		} else if len(found) > 0 {
			return found
		}
	}

	found, err := e.fallback.Extract(ctx, subset)
	if err != nil {
		e.logger.Warn("notes.layout_failed", slog.String("error", err.Error()))
		return nil
	}
	return found
}
