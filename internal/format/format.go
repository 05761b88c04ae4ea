// Package format serializes entry text into the supported export encodings.
package format

import (
	"bytes"
	"encoding/json"
	"html"
	"strconv"
	"strings"
)

// Kind identifies an output encoding.
type Kind string

// Supported output encodings.
const (
	Markdown      Kind = "markdown"
	LaTeX         Kind = "latex"
	JSON          Kind = "json"
	JSONSeparated Kind = "json-separated"
	HTML          Kind = "html"
)

// MarkdownLineBreak is the Markdown hard line break: two spaces and a newline.
const MarkdownLineBreak = "  \n"

var aliases = map[string]Kind{
	"markdown":       Markdown,
	"md":             Markdown,
	"latex":          LaTeX,
	"tex":            LaTeX,
	"json":           JSON,
	"json-separated": JSONSeparated,
	"json_separated": JSONSeparated,
	"jsonseparated":  JSONSeparated,
	"json-lines":     JSONSeparated,
	"html":           HTML,
	"htm":            HTML,
}

// Kinds returns the supported encodings in display order.
func Kinds() []Kind {
	return []Kind{Markdown, LaTeX, JSON, JSONSeparated, HTML}
}

// ParseKind resolves a format name or alias. Unknown names are returned as
// their own Kind with ok=false; Serialize passes such kinds through.
func ParseKind(name string) (kind Kind, ok bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if kind, found := aliases[normalized]; found {
		return kind, true
	}
	return Kind(normalized), false
}

// Known reports whether k is a supported encoding.
func (k Kind) Known() bool {
	switch k {
	case Markdown, LaTeX, JSON, JSONSeparated, HTML:
		return true
	default:
		return false
	}
}

// LineBreak returns the marker reflow places between wrapped lines.
func LineBreak(k Kind) string {
	if k == Markdown {
		return MarkdownLineBreak
	}
	return "\n"
}

// Extension returns the file extension used when exporting k.
func Extension(k Kind) string {
	switch k {
	case Markdown:
		return ".md"
	case LaTeX:
		return ".tex"
	case JSON, JSONSeparated:
		return ".json"
	case HTML:
		return ".html"
	default:
		return ".txt"
	}
}

// Options controls serialization.
type Options struct {
	// Compact emits single-line JSON instead of 2-space indentation.
	Compact bool
	// Reflowed marks text whose line breaks already come from reflow.
	// Markdown is then left as-is and json-separated drops empty lines.
	Reflowed bool
}

// Serialize encodes text as kind. It never fails: unknown kinds return text
// unchanged. HTML escapes <, >, &, ' and " in text before line breaks become
// <br>, so markup in the input is shown literally rather than rendered.
func Serialize(text string, kind Kind, opts Options) string {
	switch kind {
	case Markdown:
		if opts.Reflowed {
			return text
		}
		return hardBreaks(text)
	case LaTeX:
		return "\\begin{document}\n" + text + "\n\\end{document}"
	case JSON:
		return contentJSON(text, opts.Compact)
	case JSONSeparated:
		return separatedJSON(Lines(text, opts.Reflowed), opts.Compact)
	case HTML:
		return "<div>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</div>"
	default:
		return text
	}
}

// Lines splits text into the lines json-separated emits: every "\n" segment,
// or only the non-empty ones when the text was reflowed.
func Lines(text string, reflowed bool) []string {
	segments := strings.Split(text, "\n")
	if !reflowed {
		return segments
	}

	lines := segments[:0]
	for _, segment := range segments {
		if strings.TrimSpace(segment) != "" {
			lines = append(lines, segment)
		}
	}
	return lines
}

// hardBreaks appends two spaces to every non-blank line, replacing any
// trailing whitespace it already had. Blank lines are left alone.
func hardBreaks(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = strings.TrimRight(line, " \t\r") + "  "
	}
	return strings.Join(lines, "\n")
}

// contentJSON encodes {"content": text}.
func contentJSON(text string, compact bool) string {
	value := encodeString(text)
	if compact {
		return `{"content":` + value + `}`
	}
	return "{\n  \"content\": " + value + "\n}"
}

// separatedJSON encodes lines as an object keyed "line 1", "line 2", ... in
// order. encoding/json sorts map keys, so the object is written by hand.
func separatedJSON(lines []string, compact bool) string {
	if len(lines) == 0 {
		return "{}"
	}

	var builder strings.Builder
	builder.WriteString("{")
	for i, line := range lines {
		if i > 0 {
			builder.WriteString(",")
		}
		key := encodeString("line " + strconv.Itoa(i+1))
		if compact {
			builder.WriteString(key + ":" + encodeString(line))
			continue
		}
		builder.WriteString("\n  " + key + ": " + encodeString(line))
	}
	if !compact {
		builder.WriteString("\n")
	}
	builder.WriteString("}")
	return builder.String()
}

// encodeString returns s as a JSON string literal without HTML escaping.
func encodeString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
