package ocrsvc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalConverter rasterizes pages with pdftoppm and recognizes them
// with tesseract. It is the fallback when Document AI is not
// configured but local OCR tooling is.
type LocalConverter struct {
	runner Runner
	dpi    int
	lang   string
	logger *slog.Logger
}

// NewLocalConverter builds a converter using the given command runner.
func NewLocalConverter(runner Runner, dpi int, lang string, logger *slog.Logger) *LocalConverter {
	if dpi <= 0 {
		dpi = 300
	}
	if lang == "" {
		lang = "eng"
	}
	return &LocalConverter{runner: runner, dpi: dpi, lang: lang, logger: logger}
}

// Name identifies the converter in logs and run warnings.
func (l *LocalConverter) Name() string {
	return "local-tesseract"
}

// Convert renders every page to PNG and OCRs them one by one, returning
// text per page.
func (l *LocalConverter) Convert(ctx context.Context, pdfPath string) ([]string, error) {
	tmpDir, err := os.MkdirTemp("", "pnlextract-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR work dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	if _, err := l.runner.Run(ctx, "pdftoppm",
		"-r", fmt.Sprintf("%d", l.dpi), "-png", pdfPath, prefix); err != nil {
		return nil, fmt.Errorf("failed to rasterize PDF: %w", err)
	}

	images, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to list rendered pages: %w", err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", filepath.Base(pdfPath))
	}
	sort.Strings(images)

	l.logger.Info("ocr.local.start",
		slog.String("pdf", filepath.Base(pdfPath)),
		slog.Int("pages", len(images)))

	texts := make([]string, 0, len(images))
	for _, img := range images {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		out, err := l.runner.Run(ctx, "tesseract", img, "stdout", "-l", l.lang)
		if err != nil {
			return nil, fmt.Errorf("OCR failed on %s: %w", filepath.Base(img), err)
		}
		texts = append(texts, strings.TrimSpace(string(out)))
	}

	l.logger.Info("ocr.local.done", slog.Int("pages", len(texts)))
	return texts, nil
}
