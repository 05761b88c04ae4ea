// Package normalize collapses excess blank lines in entry text.
package normalize

import "regexp"

// excessBreaks matches a run of three or more line breaks (LF or CRLF).
var excessBreaks = regexp.MustCompile(`(?:\r?\n){3,}`)

// Normalize replaces every run of three or more consecutive line breaks with
// exactly two, leaving a single blank line. No other whitespace is touched.
func Normalize(text string) string {
	return excessBreaks.ReplaceAllString(text, "\n\n")
}
