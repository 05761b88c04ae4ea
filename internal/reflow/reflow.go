// Package reflow reconstructs the visual line wrapping a proportional-font
// renderer produces at a given pixel width.
//
// Each logical line of the input is wrapped on its own with a greedy word
// wrap. Width comes from an injected Measurer so the engine runs headless; it
// never caches measurements and never splits a word.
package reflow

import (
	"math"
	"strings"
)

// Measurer reports the rendered width of text at a font size, in the same
// unit as the available width passed to Reflow. Implementations must return
// the same width for the same input.
type Measurer interface {
	Measure(text string, fontSize float64) float64
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc func(text string, fontSize float64) float64

// Measure calls f(text, fontSize).
func (f MeasureFunc) Measure(text string, fontSize float64) float64 {
	return f(text, fontSize)
}

// Usable reports whether a reflow can run with the given parameters.
// A nil measurer, or a width or font size that is not a positive finite
// number, makes reflow unavailable.
func Usable(availableWidth, fontSize float64, measurer Measurer) bool {
	return measurer != nil && positiveFinite(availableWidth) && positiveFinite(fontSize)
}

// Reflow wraps text to availableWidth and joins the resulting lines with
// lineBreak. Blank lines are always joined with a plain "\n" so a Markdown
// hard-break marker never lands on an empty line.
//
// When the parameters are not Usable the text is returned unchanged.
func Reflow(text string, availableWidth, fontSize float64, measurer Measurer, lineBreak string) string {
	if !Usable(availableWidth, fontSize, measurer) {
		return text
	}
	return Join(Lines(text, availableWidth, fontSize, measurer), lineBreak)
}

// Lines returns the visual lines for text. Whitespace-only input lines become
// empty strings. When the parameters are not Usable the logical lines are
// returned as-is.
func Lines(text string, availableWidth, fontSize float64, measurer Measurer) []string {
	paragraphs := strings.Split(text, "\n")
	if !Usable(availableWidth, fontSize, measurer) {
		return paragraphs
	}

	lines := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = wrapWords(lines, words, availableWidth, fontSize, measurer)
	}
	return lines
}

// Join concatenates lines with lineBreak after each non-empty line and "\n"
// after each empty one. No separator follows the last line.
func Join(lines []string, lineBreak string) string {
	var builder strings.Builder
	for i, line := range lines {
		builder.WriteString(line)
		if i == len(lines)-1 {
			break
		}
		if line == "" {
			builder.WriteString("\n")
			continue
		}
		builder.WriteString(lineBreak)
	}
	return builder.String()
}

// wrapWords greedily packs words into lines no wider than availableWidth and
// appends them to lines. A word wider than the limit gets a line of its own.
func wrapWords(lines, words []string, availableWidth, fontSize float64, measurer Measurer) []string {
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measurer.Measure(candidate, fontSize) <= availableWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
