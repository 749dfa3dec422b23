package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// WritePageSubset writes a new PDF containing only the given zero-based
// pages, in order, and returns its path. The caller owns the temporary
// file. Table engines work on these small subsets instead of the full
// report, which keeps their memory and latency bounded.
func (d *Document) WritePageSubset(pages []int) (string, error) {
	if len(pages) == 0 {
		return "", fmt.Errorf("no pages selected")
	}

	selected := make([]string, 0, len(pages))
	for _, p := range pages {
		if p < 0 || p >= d.PageCount() {
			return "", fmt.Errorf("page %d out of range (document has %d pages)", p, d.PageCount())
		}
		selected = append(selected, strconv.Itoa(p+1))
	}

	out, err := os.CreateTemp("", "pnlextract-pages-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	outPath := out.Name()
	out.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.TrimFile(d.path, outPath, selected, conf); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("failed to extract pages %v from %s: %w", pages, filepath.Base(d.path), err)
	}
	return outPath, nil
}
