// Package pipeline runs the full extraction flow for one document:
// classification, OCR conversion when needed, page identification,
// statement extraction, note breakup, and reconciliation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/statementlens/pnlextract/internal/identify"
	"github.com/statementlens/pnlextract/internal/notes"
	"github.com/statementlens/pnlextract/internal/ocrsvc"
	"github.com/statementlens/pnlextract/internal/pdfdoc"
	"github.com/statementlens/pnlextract/internal/tables"
	"github.com/statementlens/pnlextract/internal/validate"
)

// Limits bound the documents the pipeline accepts.
type Limits struct {
	MaxFileSize int64
	MaxPages    int
}

// Confirmer resolves an ambiguous page identification. It receives the
// zero-based candidate pages and returns the chosen page; ok=false
// keeps the pipeline's own pick.
type Confirmer func(candidates []int) (page int, ok bool)

// Pipeline holds the wired stages. The OCR converter is selected
// lazily and memoized: Document AI coordinates are validated on first
// use, not at startup, so text-native documents never touch the OCR
// configuration at all.
type Pipeline struct {
	limits        Limits
	identifier    *identify.Identifier
	extractor     *tables.Extractor
	noteExtractor *notes.Extractor
	confirm       Confirmer
	logger        *slog.Logger

	ocrCfg  ocrsvc.Config
	ocrOnce sync.Once
	ocrConv ocrsvc.Converter
	ocrErr  error
}

// New wires a pipeline from its stages.
func New(limits Limits, identifier *identify.Identifier, extractor *tables.Extractor,
	noteExtractor *notes.Extractor, ocrCfg ocrsvc.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		limits:        limits,
		identifier:    identifier,
		extractor:     extractor,
		noteExtractor: noteExtractor,
		ocrCfg:        ocrCfg,
		logger:        logger,
	}
}

// SetConfirmer installs an interactive resolver for low-confidence
// page identification. Without one the pipeline proceeds with its
// best pick and records a warning.
func (p *Pipeline) SetConfirmer(f Confirmer) {
	p.confirm = f
}

// noteKeyword is the line item whose breakup the note stage extracts.
const noteKeyword = "Other expenses"

// Run processes one document end to end. The returned Result is
// non-nil even on partial success up to the failing stage's error.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	res := &Result{Source: path, NotePage: -1}

	doc, err := pdfdoc.Open(path, p.limits.MaxFileSize, p.limits.MaxPages)
	if err != nil {
		return res, userDataErr("open", "%v", err)
	}
	defer doc.Close()

	if err := p.classify(ctx, doc, res); err != nil {
		return res, err
	}
	if err := p.identify(ctx, doc, res); err != nil {
		return res, err
	}
	if err := p.extractStatement(ctx, doc, res); err != nil {
		return res, err
	}
	p.extractNote(ctx, doc, res)

	res.MetricsCurrent, res.MetricsPrevious = validate.ComputeMetrics(res.Statement)
	res.Duration = time.Since(start)

	p.logger.Info("pipeline.done",
		slog.String("source", path),
		slog.String("pdf_type", string(res.PDFType)),
		slog.Int("items", len(res.Statement.Items)),
		slog.Int("warnings", len(res.Warnings)),
		slog.Duration("elapsed", res.Duration))
	return res, nil
}

// classify types the document and runs OCR conversion when the text
// layer is unusable. Scanned input without a configured OCR service
// fails fast here rather than producing empty downstream results.
func (p *Pipeline) classify(ctx context.Context, doc *pdfdoc.Document, res *Result) error {
	c := doc.Classify()
	res.PDFType = c.Type
	res.Warnings = append(res.Warnings, c.Warnings...)

	p.logger.Info("pipeline.classified",
		slog.String("source", res.Source),
		slog.String("pdf_type", string(c.Type)))

	if !c.Type.RequiresOCR() {
		return nil
	}

	conv, err := p.converter()
	if err != nil {
		return configErr("ocr", "OCR converter misconfigured: %v", err)
	}
	if conv == nil {
		return userDataErr("ocr",
			"document is %s with no recoverable text, and no OCR service is configured", c.Type)
	}

	texts, err := conv.Convert(ctx, doc.Path())
	if err != nil {
		return unexpectedErr("ocr", fmt.Errorf("%s conversion failed: %w", conv.Name(), err))
	}
	doc.ReplaceTexts(texts)
	res.warn(fmt.Sprintf("text recovered via %s OCR; extraction accuracy depends on scan quality", conv.Name()))
	return nil
}

func (p *Pipeline) converter() (ocrsvc.Converter, error) {
	p.ocrOnce.Do(func() {
		p.ocrConv, p.ocrErr = ocrsvc.Select(p.ocrCfg, p.logger)
	})
	return p.ocrConv, p.ocrErr
}

// identify locates the statement pages and resolves low-confidence
// picks through the confirmer when one is installed.
func (p *Pipeline) identify(ctx context.Context, doc *pdfdoc.Document, res *Result) error {
	id := p.identifier.Identify(ctx, doc.PageTexts())
	res.Identification = id
	res.Warnings = append(res.Warnings, id.Warnings...)

	if id.Pages.ProfitAndLoss == identify.PageNone {
		return userDataErr("identify",
			"no profit and loss page found in %s document (methods attempted: %s)",
			res.PDFType, methodList(id.Attempted))
	}

	if id.NeedsConfirmation {
		if p.confirm != nil && len(id.Candidates) > 1 {
			if page, ok := p.confirm(id.Candidates); ok {
				res.Identification.Pages.ProfitAndLoss = page
				p.logger.Info("pipeline.page_confirmed", slog.Int("page", page))
				return nil
			}
		}
		res.warn(fmt.Sprintf("page identification confidence %.0f%% is below %.0f%%; proceeding with page %d",
			id.Confidence, identify.ConfidenceThreshold, id.Pages.ProfitAndLoss+1))
	}
	return nil
}

// methodList renders the identification methods that actually ran.
func methodList(attempted []identify.Method) string {
	if len(attempted) == 0 {
		return "none"
	}
	names := make([]string, len(attempted))
	for i, m := range attempted {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func (p *Pipeline) extractStatement(ctx context.Context, doc *pdfdoc.Document, res *Result) error {
	st, warnings, err := p.extractor.ExtractStatement(ctx, doc, res.Identification.Pages.ProfitAndLoss)
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		return userDataErr("extract", "%v", err)
	}

	if res.Identification.CompanyName != "" {
		st.Company = res.Identification.CompanyName
	}
	if res.Identification.Currency != "" {
		st.Currency = res.Identification.Currency
	}
	res.Statement = st
	return nil
}

// extractNote runs the note stage. Everything here is best-effort:
// a missing note reference or an unlocatable note degrades to
// warnings, and reconciliation failures are findings, not errors.
func (p *Pipeline) extractNote(ctx context.Context, doc *pdfdoc.Document, res *Result) {
	ref, ok := res.Statement.NoteRefs[noteKeyword]
	if !ok {
		res.warn(fmt.Sprintf("no note reference found for %q; skipping note breakup", noteKeyword))
		return
	}
	res.NoteNumber = ref

	searchStart := res.Identification.Pages.NotesStart
	if searchStart == identify.PageNone {
		searchStart = res.Identification.Pages.ProfitAndLoss + 1
	}

	texts := doc.PageTexts()
	loc, found := notes.Locate(texts, ref, strings.ToLower(noteKeyword), searchStart)
	if !found {
		res.warn(notes.DescribeMiss(ref, strings.ToLower(noteKeyword), searchStart, len(texts)))
		return
	}
	res.NotePage = loc.Page

	breakup, err := p.noteExtractor.Extract(ctx, doc, loc.Page, ref)
	if err != nil {
		res.warn(fmt.Sprintf("note breakup extraction failed: %v", err))
		return
	}
	res.Breakup = breakup

	res.Checks = validate.CrossCheck(res.Statement, breakup, ref)
	for _, f := range validate.Failures(res.Checks) {
		res.warn(fmt.Sprintf("reconciliation: %s: got %.2f, expected %.2f", f.Name, f.Actual, f.Expected))
	}
}
