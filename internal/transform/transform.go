// Package transform runs the entry export pipeline: normalize, optionally
// reflow to the on-screen wrapping, then serialize.
//
// Transform is a pure function of its Request. It holds no state between
// calls and is safe to call from many goroutines as long as the supplied
// Measurer is.
package transform

import (
	"math"

	"github.com/gorewood/shuffle/internal/entry"
	"github.com/gorewood/shuffle/internal/format"
	"github.com/gorewood/shuffle/internal/normalize"
	"github.com/gorewood/shuffle/internal/reflow"
)

// DefaultFontSize is used when a request or entry leaves the font size unset.
const DefaultFontSize = 16

// Request describes one transformation.
type Request struct {
	Text   string
	Format format.Kind

	// PreserveMargins asks for the visual line breaks of the editor.
	// It only takes effect when Measurer, RenderWidth and FontSize are usable.
	PreserveMargins bool
	Compact         bool

	// RenderWidth is the editor width in pixels, before padding.
	RenderWidth float64
	// Padding is the total horizontal padding subtracted from RenderWidth.
	Padding float64
	// FontSize in pixels. Zero selects DefaultFontSize.
	FontSize float64

	Measurer reflow.Measurer
}

// Transform converts req.Text into req.Format. It never fails: an unknown
// format returns the normalized text and unusable measuring falls back to
// the unwrapped path.
func Transform(req Request) string {
	text := normalize.Normalize(req.Text)
	if !req.Format.Known() {
		return text
	}

	opts := format.Options{Compact: req.Compact}
	if width, fontSize, ok := reflowParams(req); ok {
		text = reflow.Reflow(text, width, fontSize, req.Measurer, format.LineBreak(req.Format))
		opts.Reflowed = true
	}

	return format.Serialize(text, req.Format, opts)
}

// WillReflow reports whether Transform would reflow req.
func WillReflow(req Request) bool {
	if !req.Format.Known() {
		return false
	}
	_, _, ok := reflowParams(req)
	return ok
}

// reflowParams returns the available width and font size for reflow, and
// whether reflow applies at all.
func reflowParams(req Request) (width, fontSize float64, ok bool) {
	if !req.PreserveMargins {
		return 0, 0, false
	}

	fontSize = req.FontSize
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}

	padding := req.Padding
	if math.IsNaN(padding) || math.IsInf(padding, 0) || padding < 0 {
		padding = 0
	}
	width = req.RenderWidth - padding

	return width, fontSize, reflow.Usable(width, fontSize, req.Measurer)
}

// FromEntry builds a request for e. Non-zero entry width and font size
// override base.RenderWidth and base.FontSize.
func FromEntry(e *entry.Entry, base Request) Request {
	req := base
	req.Text = e.Text
	if e.Width > 0 {
		req.RenderWidth = e.Width
	}
	if e.FontSize > 0 {
		req.FontSize = e.FontSize
	}
	return req
}
