package ocrsvc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubRunner fakes pdftoppm and tesseract: the rasterize step writes
// empty PNG files, and each OCR call returns canned text.
type stubRunner struct {
	pages    int
	ocrText  map[string]string
	commands []string
	failOn   string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	s.commands = append(s.commands, name)
	if name == s.failOn {
		return nil, fmt.Errorf("%s exploded", name)
	}

	switch name {
	case "pdftoppm":
		prefix := args[len(args)-1]
		for i := 1; i <= s.pages; i++ {
			path := fmt.Sprintf("%s-%d.png", prefix, i)
			if err := os.WriteFile(path, nil, 0o644); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case "tesseract":
		img := filepath.Base(args[0])
		return []byte(s.ocrText[img]), nil
	default:
		return nil, fmt.Errorf("unexpected command %s", name)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalConverterConvert(t *testing.T) {
	runner := &stubRunner{
		pages: 2,
		ocrText: map[string]string{
			"page-1.png": "Statement of Profit and Loss",
			"page-2.png": "Notes to the financial statements",
		},
	}
	conv := NewLocalConverter(runner, 150, "eng", discardLogger())

	texts, err := conv.Convert(context.Background(), "report.pdf")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(texts))
	}
	if !strings.Contains(texts[0], "Profit and Loss") {
		t.Errorf("page 1 text = %q", texts[0])
	}
	if !strings.Contains(texts[1], "Notes") {
		t.Errorf("page 2 text = %q", texts[1])
	}
}

func TestLocalConverterRasterizeFailure(t *testing.T) {
	runner := &stubRunner{failOn: "pdftoppm"}
	conv := NewLocalConverter(runner, 0, "", discardLogger())

	_, err := conv.Convert(context.Background(), "report.pdf")
	if err == nil {
		t.Fatal("expected an error when rasterizing fails")
	}
	if !strings.Contains(err.Error(), "rasterize") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLocalConverterOCRFailure(t *testing.T) {
	runner := &stubRunner{pages: 1, failOn: "tesseract"}
	conv := NewLocalConverter(runner, 0, "", discardLogger())

	_, err := conv.Convert(context.Background(), "report.pdf")
	if err == nil {
		t.Fatal("expected an error when OCR fails")
	}
}

func TestSelectPrefersDocAI(t *testing.T) {
	cfg := Config{
		DocAI:    DocAIConfig{ProjectID: "p", Location: "us", ProcessorID: "proc"},
		LocalOCR: true,
	}
	conv, err := Select(cfg, discardLogger())
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if conv == nil || conv.Name() != "documentai" {
		t.Fatalf("expected documentai converter, got %v", conv)
	}
}

func TestSelectNoneConfigured(t *testing.T) {
	conv, err := Select(Config{}, discardLogger())
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if conv != nil {
		t.Fatalf("expected nil converter, got %s", conv.Name())
	}
}
