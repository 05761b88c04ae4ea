package measure

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

// Measurer reports the rendered width of text at a font size.
// It matches reflow.Measurer.
type Measurer interface {
	Measure(text string, fontSize float64) float64
}

// Kind names a measurer implementation.
type Kind string

// Supported measurer kinds.
const (
	KindMonospace Kind = "mono"
	KindTrueType  Kind = "truetype"
	KindPDF       Kind = "pdf"
)

// DefaultAdvance is the monospace advance as a fraction of the font size.
const DefaultAdvance = 0.6

// Options configures New.
type Options struct {
	// Advance is the per-rune width ratio for KindMonospace.
	Advance float64
	// Font is a TrueType file path for KindTrueType, or a core font
	// family for KindPDF. Empty selects the default.
	Font string
	// Cache wraps the measurer with Cached.
	Cache bool
}

// Kinds returns the supported measurer kinds.
func Kinds() []Kind {
	return []Kind{KindMonospace, KindTrueType, KindPDF}
}

// ParseKind resolves a measurer name. Empty selects KindMonospace.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mono", "monospace":
		return KindMonospace, true
	case "truetype", "ttf":
		return KindTrueType, true
	case "pdf":
		return KindPDF, true
	default:
		return Kind(name), false
	}
}

// New builds the measurer named by kind.
func New(kind Kind, opts Options) (Measurer, error) {
	var (
		m   Measurer
		err error
	)

	resolved, ok := ParseKind(string(kind))
	if !ok {
		return nil, fmt.Errorf("unknown measurer %q (want mono, truetype or pdf)", kind)
	}
	switch resolved {
	case KindMonospace:
		m = Monospace{Advance: opts.Advance}
	case KindTrueType:
		m, err = LoadTrueType(opts.Font)
	case KindPDF:
		m, err = NewPDF(opts.Font)
	}
	if err != nil {
		return nil, err
	}

	if opts.Cache {
		m = Cached(m)
	}
	return m, nil
}

// Monospace measures every rune with the same advance.
type Monospace struct {
	// Advance is the rune width as a fraction of the font size.
	// Zero means DefaultAdvance.
	Advance float64
}

// Measure returns runes × advance × fontSize.
func (m Monospace) Measure(text string, fontSize float64) float64 {
	advance := m.Advance
	if advance <= 0 {
		advance = DefaultAdvance
	}
	return float64(utf8.RuneCountInString(text)) * advance * fontSize
}

type cacheKey struct {
	text     string
	fontSize float64
}

// CachedMeasurer memoises the widths reported by another measurer.
type CachedMeasurer struct {
	next Measurer

	mu     sync.Mutex
	widths map[cacheKey]float64
	hits   int
}

// Cached wraps next with a memoising measurer that is safe for concurrent use.
func Cached(next Measurer) *CachedMeasurer {
	return &CachedMeasurer{
		next:   next,
		widths: make(map[cacheKey]float64),
	}
}

// Measure returns the cached width or asks the wrapped measurer.
func (c *CachedMeasurer) Measure(text string, fontSize float64) float64 {
	key := cacheKey{text: text, fontSize: fontSize}

	c.mu.Lock()
	if width, ok := c.widths[key]; ok {
		c.hits++
		c.mu.Unlock()
		return width
	}
	c.mu.Unlock()

	width := c.next.Measure(text, fontSize)

	c.mu.Lock()
	c.widths[key] = width
	c.mu.Unlock()
	return width
}

// Hits reports how many measurements were served from the cache.
func (c *CachedMeasurer) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Reset drops every cached width.
func (c *CachedMeasurer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.widths = make(map[cacheKey]float64)
	c.hits = 0
}
