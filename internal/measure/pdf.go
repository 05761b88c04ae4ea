package measure

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"
)

// DefaultPDFFont is the core font family used when none is given.
const DefaultPDFFont = "Helvetica"

var coreFonts = map[string]bool{
	"arial":     true,
	"helvetica": true,
	"times":     true,
	"courier":   true,
}

// PDF measures text with the metrics of a PDF core font. The document is
// never written; it only carries the current font for GetStringWidth.
type PDF struct {
	family string
	tr     func(string) string

	mu  sync.Mutex
	doc *gofpdf.Fpdf
}

// NewPDF creates a measurer for a core font family (Helvetica, Arial, Times
// or Courier). Empty selects DefaultPDFFont.
func NewPDF(family string) (*PDF, error) {
	if family == "" {
		family = DefaultPDFFont
	}
	if !coreFonts[strings.ToLower(family)] {
		return nil, fmt.Errorf("unsupported PDF core font %q", family)
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetFont(family, "", 12)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("loading core font %s: %w", family, err)
	}
	return &PDF{family: family, tr: doc.UnicodeTranslatorFromDescriptor(""), doc: doc}, nil
}

// Family returns the core font family name.
func (p *PDF) Family() string {
	return p.family
}

// Measure returns the width of text at fontSize. Text is encoded to cp1252
// first since core font metrics are indexed by byte.
func (p *PDF) Measure(text string, fontSize float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc.SetFontSize(fontSize)
	return p.doc.GetStringWidth(p.tr(text))
}
