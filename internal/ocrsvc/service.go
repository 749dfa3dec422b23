package ocrsvc

import (
	"context"
	"log/slog"
)

// Converter turns a PDF without a usable text layer into per-page
// searchable text.
type Converter interface {
	Name() string
	Convert(ctx context.Context, pdfPath string) ([]string, error)
}

// Config selects and parameterizes the available converter.
type Config struct {
	DocAI     DocAIConfig
	LocalOCR  bool
	LocalDPI  int
	LocalLang string
}

// Select returns the configured converter, or nil when none is
// configured. Callers must distinguish nil (OCR not configured, a
// setup problem for scanned input) from a Convert error (OCR ran and
// failed).
func Select(cfg Config, logger *slog.Logger) (Converter, error) {
	if cfg.DocAI.Configured() {
		return NewDocAIConverter(cfg.DocAI, logger)
	}
	if cfg.LocalOCR {
		return NewLocalConverter(ExecRunner{}, cfg.LocalDPI, cfg.LocalLang, logger), nil
	}
	return nil, nil
}
