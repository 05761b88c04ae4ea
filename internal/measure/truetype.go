package measure

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// TrueType measures text with glyph advances from a TrueType font.
// Faces are built per font size at 72 DPI so one point equals one unit.
type TrueType struct {
	font *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewTrueType wraps a parsed font. A nil font selects Go Regular.
func NewTrueType(ft *truetype.Font) (*TrueType, error) {
	if ft == nil {
		parsed, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("parsing Go Regular: %w", err)
		}
		ft = parsed
	}
	return &TrueType{font: ft, faces: make(map[float64]font.Face)}, nil
}

// LoadTrueType reads and parses a TrueType file. An empty path selects Go Regular.
func LoadTrueType(path string) (*TrueType, error) {
	if path == "" {
		return NewTrueType(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font %s: %w", path, err)
	}

	ft, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return NewTrueType(ft)
}

// Measure returns the advance width of text at fontSize.
func (t *TrueType) Measure(text string, fontSize float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	// font.Face implementations keep glyph caches and are not safe for
	// concurrent use, so measuring stays under the lock.
	advance := font.MeasureString(t.face(fontSize), text)
	return float64(advance) / 64
}

// face returns the face for fontSize. Caller holds t.mu.
func (t *TrueType) face(fontSize float64) font.Face {
	if face, ok := t.faces[fontSize]; ok {
		return face
	}
	face := truetype.NewFace(t.font, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	t.faces[fontSize] = face
	return face
}
