package ocrsvc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocAIConfig holds the Document AI processor coordinates. The service
// is considered configured only when all three identifiers are set.
type DocAIConfig struct {
	ProjectID       string
	Location        string
	ProcessorID     string
	CredentialsFile string
}

// Configured reports whether the processor coordinates are complete.
func (c DocAIConfig) Configured() bool {
	return c.ProjectID != "" && c.Location != "" && c.ProcessorID != ""
}

// DocAIConverter runs a PDF through a Document AI OCR processor and
// returns the recognized text per page.
type DocAIConverter struct {
	cfg    DocAIConfig
	logger *slog.Logger
}

// NewDocAIConverter validates the config and builds a converter.
func NewDocAIConverter(cfg DocAIConfig, logger *slog.Logger) (*DocAIConverter, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("document AI requires project, location and processor IDs")
	}
	return &DocAIConverter{cfg: cfg, logger: logger}, nil
}

// Name identifies the converter in logs and run warnings.
func (d *DocAIConverter) Name() string {
	return "documentai"
}

// Convert sends the whole PDF to the processor and splits the result
// back into per-page text.
func (d *DocAIConverter) Convert(ctx context.Context, pdfPath string) ([]string, error) {
	content, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF for OCR: %w", err)
	}

	opts := []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", d.cfg.Location)),
	}
	if d.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(d.cfg.CredentialsFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create document AI client: %w", err)
	}
	defer client.Close()

	req := &documentaipb.ProcessRequest{
		SkipHumanReview: true,
		Name: fmt.Sprintf("projects/%s/locations/%s/processors/%s",
			d.cfg.ProjectID, d.cfg.Location, d.cfg.ProcessorID),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: "application/pdf",
			},
		},
	}

	d.logger.Info("ocr.docai.request",
		slog.String("processor", d.cfg.ProcessorID),
		slog.Int("pdf_bytes", len(content)))

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("document AI processing failed: %w", err)
	}

	doc := resp.GetDocument()
	pages := pageTexts(doc)

	d.logger.Info("ocr.docai.done",
		slog.Int("pages", len(pages)),
		slog.Int("text_bytes", len(doc.GetText())))
	return pages, nil
}

// pageTexts reassembles each page's text from its layout anchors into
// the full document text.
func pageTexts(doc *documentaipb.Document) []string {
	full := doc.GetText()
	out := make([]string, 0, len(doc.GetPages()))
	for _, page := range doc.GetPages() {
		out = append(out, textFromLayout(full, page.GetLayout()))
	}
	return out
}

func textFromLayout(fullText string, layout *documentaipb.Document_Page_Layout) string {
	var sb strings.Builder
	for _, seg := range layout.GetTextAnchor().GetTextSegments() {
		start, end := seg.GetStartIndex(), seg.GetEndIndex()
		if start < 0 || end > int64(len(fullText)) || start > end {
			continue
		}
		sb.WriteString(fullText[start:end])
	}
	return sb.String()
}
