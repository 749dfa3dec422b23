package pdfdoc

import "fmt"

// PDFType is the coarse classification of a document's text layer.
type PDFType string

const (
	// TypeText marks documents with a native extractable text layer.
	TypeText PDFType = "text"
	// TypeVectorOutlined marks exports whose text was converted to
	// vector outlines, so nothing is extractable without OCR.
	TypeVectorOutlined PDFType = "vector_outlined"
	// TypeScanned marks raster scans with no text layer at all.
	TypeScanned PDFType = "scanned"
)

// RequiresOCR reports whether a document of this type needs an OCR
// conversion before any text-based processing can run.
func (t PDFType) RequiresOCR() bool {
	return t == TypeVectorOutlined || t == TypeScanned
}

// Classification is the outcome of sampling a document, including the
// per-page evidence and any advisory warnings.
type Classification struct {
	Type     PDFType
	Samples  []PageSample
	Warnings []string
}

// Classify samples pages from the front, middle, and back of the
// document and decides how its text layer was produced. Sampling all
// three regions matters: annual reports commonly mix a text-native
// front section with scanned statement pages at the back.
func (d *Document) Classify() Classification {
	samples := d.collectSamples()

	textPages := 0
	vectorPages := 0
	imagePages := 0
	for _, s := range samples {
		switch {
		case s.HasText:
			textPages++
		case s.IsVector:
			vectorPages++
		case s.HasImage:
			imagePages++
		}
	}

	c := Classification{
		Type:    decideType(len(samples), textPages, vectorPages, imagePages),
		Samples: samples,
	}

	if textPages > 0 && (vectorPages > 0 || imagePages > 0) {
		c.Warnings = append(c.Warnings, fmt.Sprintf(
			"mixed document: %d text pages alongside %d vector and %d image pages in sample; extraction quality may vary by section",
			textPages, vectorPages, imagePages))
	}
	return c
}

// decideType applies the classification policy to the sample counts.
func decideType(total, textPages, vectorPages, imagePages int) PDFType {
	if total == 0 {
		return TypeText
	}
	textRatio := float64(textPages) / float64(total)

	if textRatio >= 0.5 {
		return TypeText
	}
	if vectorPages > 0 && vectorPages >= imagePages {
		return TypeVectorOutlined
	}
	if imagePages > 0 {
		return TypeScanned
	}
	if textRatio < 0.3 {
		return TypeVectorOutlined
	}
	return TypeText
}

// collectSamples picks up to about twenty pages spread across the
// document. Small documents are sampled in full.
func (d *Document) collectSamples() []PageSample {
	n := d.PageCount()
	indices := samplePlan(n)

	samples := make([]PageSample, 0, len(indices))
	for _, i := range indices {
		samples = append(samples, d.samplePage(i))
	}
	return samples
}

// samplePlan returns the zero-based page indices to inspect: the first
// six pages, eight around the midpoint, and the last six, deduplicated
// in order. The middle segment is the largest because the financial
// statements usually sit mid-document.
func samplePlan(pageCount int) []int {
	if pageCount <= 20 {
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[int]bool)
	var plan []int
	add := func(i int) {
		if i < 0 || i >= pageCount || seen[i] {
			return
		}
		seen[i] = true
		plan = append(plan, i)
	}

	for i := 0; i < 6; i++ {
		add(i)
	}
	mid := pageCount / 2
	for i := mid - 4; i < mid+4; i++ {
		add(i)
	}
	for i := pageCount - 6; i < pageCount; i++ {
		add(i)
	}
	return plan
}
