// Package measure provides text-width measurers for line reflow.
//
// Every measurer reports widths in the same unit as the font size it is
// given, so a 16px font measured here yields pixel widths comparable to a
// 16px-wide rendering surface.
//
// # Measurers
//
//   - Monospace: fixed advance per rune, for headless use and tests
//   - TrueType: glyph advances from a TrueType font (Go Regular by default)
//   - PDF: PDF core font metrics (Helvetica, Times, Courier) without font files
//
// PDF metrics cover cp1252 only. Runes outside it are measured as a '.'
// glyph.
//
// # Caching
//
// No measurer caches widths. Wrap one with Cached to memoise results for as
// long as the wrapper lives:
//
//	m := measure.Cached(measure.NewTrueType(nil))
//
// Only do this when the wrapped measurer is pure; reflow itself never caches.
package measure
