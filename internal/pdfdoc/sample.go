package pdfdoc

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// Thresholds for interpreting a sampled page. A page with a real text
// layer carries at least minTextWords extractable words; outlined vector
// pages carry oversized content streams instead; scanned pages carry one
// large embedded raster image.
const (
	minTextWords      = 20
	vectorStreamBytes = 30 * 1024
	scannedImageBytes = 50 * 1024
)

// PageSample records the classification signals observed on one page.
type PageSample struct {
	Index     int
	WordCount int
	HasText   bool
	IsVector  bool
	HasImage  bool
}

// samplePage inspects a single zero-based page and reports its signals.
// The vector check runs before the image check: outlined-text exports
// often embed a decorative raster image too, and the oversized content
// stream is the stronger signal.
func (d *Document) samplePage(index int) PageSample {
	s := PageSample{Index: index}

	s.WordCount = countWords(d.PageText(index))
	s.HasText = s.WordCount >= minTextWords
	if s.HasText {
		return s
	}

	s.IsVector = d.contentStreamSize(index) > vectorStreamBytes
	if s.IsVector {
		return s
	}

	s.HasImage = d.largestImageSize(index) > scannedImageBytes
	return s
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

// contentStreamSize returns the total byte length of a page's content
// streams. Malformed PDFs panic inside the value navigation, so the
// whole walk is guarded.
func (d *Document) contentStreamSize(index int) (size int64) {
	defer func() {
		if recover() != nil {
			size = 0
		}
	}()

	page := d.r.Page(index + 1)
	if page.V.IsNull() {
		return 0
	}

	contents := page.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Stream:
		return contents.Key("Length").Int64()
	case pdf.Array:
		var total int64
		for i := 0; i < contents.Len(); i++ {
			total += contents.Index(i).Key("Length").Int64()
		}
		return total
	default:
		return 0
	}
}

// largestImageSize returns the byte length of the largest image XObject
// on a page, or 0 when the page embeds none.
func (d *Document) largestImageSize(index int) (size int64) {
	defer func() {
		if recover() != nil {
			size = 0
		}
	}()

	page := d.r.Page(index + 1)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}
	xobjects := resources.Key("XObject")
	if xobjects.IsNull() || xobjects.Kind() != pdf.Dict {
		return 0
	}

	var largest int64
	for _, name := range xobjects.Keys() {
		obj := xobjects.Key(name)
		if obj.Kind() != pdf.Stream {
			continue
		}
		if obj.Key("Subtype").Name() != "Image" {
			continue
		}
		if n := obj.Key("Length").Int64(); n > largest {
			largest = n
		}
	}
	return largest
}
