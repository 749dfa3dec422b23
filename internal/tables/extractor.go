package tables

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/statementlens/pnlextract/internal/pdfdoc"
)

// minStatementItems is the item count below which the primary engine's
// result is considered too thin and the fallback engine runs too.
const minStatementItems = 5

// Extractor orchestrates the extraction engines over the statement
// pages. primary may be nil when no table service is configured; the
// layout fallback always exists.
type Extractor struct {
	primary  *StructuredEngine
	fallback *LayoutEngine
	logger   *slog.Logger
}

// NewExtractor wires the engines together.
func NewExtractor(primary *StructuredEngine, fallback *LayoutEngine, logger *slog.Logger) *Extractor {
	return &Extractor{primary: primary, fallback: fallback, logger: logger}
}

// ExtractStatement pulls the profit and loss line items from the
// identified page. The statement often spills onto the following page,
// so both go into the page subset. The primary service runs first,
// retried with OCR when it sees no tables; if it fails or yields fewer
// than minStatementItems items, the layout fallback runs and the
// richer result wins.
func (e *Extractor) ExtractStatement(ctx context.Context, doc *pdfdoc.Document, statementPage int) (*Statement, []string, error) {
	var warnings []string

	pages := []int{statementPage}
	if statementPage+1 < doc.PageCount() {
		pages = append(pages, statementPage+1)
	}

	subset, err := doc.WritePageSubset(pages)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to prepare statement pages: %w", err)
	}
	defer os.Remove(subset)

	items, noteRefs, engine := e.runPrimary(ctx, subset, &warnings)

	if len(items) < minStatementItems {
		fbItems, fbRefs, fbErr := e.runFallback(ctx, subset)
		if fbErr != nil {
			warnings = append(warnings, fmt.Sprintf("fallback table extraction failed: %v", fbErr))
		} else if len(fbItems) > len(items) {
			e.logger.Info("tables.fallback_preferred",
				slog.Int("primary_items", len(items)),
				slog.Int("fallback_items", len(fbItems)))
			items, noteRefs, engine = fbItems, fbRefs, e.fallback.Name()
		}
	}

	if len(items) == 0 {
		attempted := e.fallback.Name()
		if e.primary != nil {
			attempted = e.primary.Name() + ", " + attempted
		}
		return nil, warnings, fmt.Errorf("no statement line items found on page %d (engines attempted: %s)", statementPage+1, attempted)
	}

	st := &Statement{
		Company:  DetectCompanyName(doc, statementPage),
		Currency: "INR Million",
		Items:    items,
		NoteRefs: noteRefs,
		Engine:   engine,
	}

	// Engines regularly drop the slim note-reference column; recover
	// the one reference the rest of the pipeline depends on from the
	// raw page text.
	if _, ok := st.Items["Other expenses"]; ok {
		if _, ok := st.NoteRefs["Other expenses"]; !ok {
			if ref := ExtractNoteRefFromText(doc, statementPage, "other expenses"); ref != "" {
				st.NoteRefs["Other expenses"] = ref
				e.logger.Info("tables.note_ref_from_text", slog.String("ref", ref))
			}
		}
	}

	e.logger.Info("tables.statement_extracted",
		slog.String("engine", st.Engine),
		slog.Int("items", len(st.Items)),
		slog.Int("note_refs", len(st.NoteRefs)))
	return st, warnings, nil
}

// runPrimary runs the table service with the OCR retry, returning
// empty maps when the service is unconfigured or fails.
func (e *Extractor) runPrimary(ctx context.Context, subset string, warnings *[]string) (map[string]LineItem, map[string]string, string) {
	if e.primary == nil {
		return nil, nil, ""
	}

	found, err := e.primary.Extract(ctx, subset, false)
	if err == nil && len(found) == 0 {
		e.logger.Info("tables.structured.retry_with_ocr")
		found, err = e.primary.Extract(ctx, subset, true)
	}
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("table service failed: %v", err))
		return nil, nil, ""
	}
	if len(found) == 0 {
		return nil, nil, ""
	}

	items, refs := extractFromTables(found)
	return items, refs, e.primary.Name()
}

// runFallback runs the layout engine over the subset.
func (e *Extractor) runFallback(ctx context.Context, subset string) (map[string]LineItem, map[string]string, error) {
	found, err := e.fallback.Extract(ctx, subset)
	if err != nil {
		return nil, nil, err
	}
	if len(found) == 0 {
		return nil, nil, nil
	}
	items, refs := extractFromTables(found)
	return items, refs, nil
}

// extractFromTables selects the statement table and extracts its
// items, falling back to the largest table when keyword selection
// fails.
func extractFromTables(found []Table) (map[string]LineItem, map[string]string) {
	idx := BestStatementTable(found)
	if idx < 0 {
		idx = LargestTable(found)
	}
	if idx < 0 {
		return nil, nil
	}
	return extractItems(found[idx])
}

var trailingDigits = regexp.MustCompile(`\d+$`)

// DetectCompanyName reads the company name off the top of the
// statement page; Indian company names carry a "Limited" or "Ltd"
// suffix.
func DetectCompanyName(doc *pdfdoc.Document, page int) string {
	for _, line := range doc.HeaderLines(page, 15) {
		if !strings.Contains(line, "Limited") && !strings.Contains(line, "Ltd") {
			continue
		}
		name := line
		for _, sep := range []string{"—", "–"} {
			if i := strings.Index(name, sep); i >= 0 {
				name = name[:i]
			}
		}
		name = strings.TrimSpace(trailingDigits.ReplaceAllString(strings.TrimSpace(name), ""))
		if len(name) > 5 {
			return name
		}
	}
	return "Unknown Company"
}
