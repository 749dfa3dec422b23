package tables

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// StructuredConfig points at the table-structure extraction service.
type StructuredConfig struct {
	URL     string
	Timeout time.Duration
}

// StructuredEngine calls the external ML table-structure service. The
// service receives the PDF inline and returns cell grids; accuracy
// mode is always requested since the inputs are two-page subsets.
type StructuredEngine struct {
	cfg    StructuredConfig
	client *http.Client
	logger *slog.Logger
}

// NewStructuredEngine builds the engine, or returns nil when no
// service URL is configured.
func NewStructuredEngine(cfg StructuredConfig, logger *slog.Logger) *StructuredEngine {
	if cfg.URL == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &StructuredEngine{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Name identifies the engine in diagnostics.
func (e *StructuredEngine) Name() string {
	return "table-structure"
}

type structuredRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
	OCR     bool   `json:"ocr"`
}

type structuredResponse struct {
	Tables []struct {
		Cells [][]string `json:"cells"`
	} `json:"tables"`
	Error string `json:"error,omitempty"`
}

// Extract sends the PDF through the service and returns its tables.
// With ocr set, the service rasterizes pages and recognizes cell text
// instead of relying on the text layer.
func (e *StructuredEngine) Extract(ctx context.Context, pdfPath string, ocr bool) ([]Table, error) {
	content, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF for table extraction: %w", err)
	}

	body, err := json.Marshal(structuredRequest{
		Content: base64.StdEncoding.EncodeToString(content),
		Mode:    "accurate",
		OCR:     ocr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.URL+"/v1/tables", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build table request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	reqID := uuid.NewString()
	e.logger.Debug("tables.structured.request",
		slog.String("req_id", reqID),
		slog.String("pdf", filepath.Base(pdfPath)),
		slog.Bool("ocr", ocr))

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("table service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read table service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("table service returned status %d", resp.StatusCode)
	}

	var parsed structuredResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode table service response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("table service error: %s", parsed.Error)
	}

	tables := make([]Table, 0, len(parsed.Tables))
	for _, t := range parsed.Tables {
		if len(t.Cells) >= 2 {
			tables = append(tables, Table{Rows: t.Cells})
		}
	}

	e.logger.Debug("tables.structured.response",
		slog.String("req_id", reqID),
		slog.Int("tables", len(tables)),
		slog.Duration("elapsed", time.Since(start)))
	return tables, nil
}
