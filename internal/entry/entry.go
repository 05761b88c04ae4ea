// Package entry provides the journal entry schema, frontmatter parsing and
// the in-session entry store.
package entry

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is a user-authored note with its display preferences.
type Entry struct {
	ID          string   `json:"id"                    yaml:"id"`
	Title       string   `json:"title"                 yaml:"title"`
	Text        string   `json:"text"                  yaml:"-"`
	Date        string   `json:"date"                  yaml:"date"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
	// Width is the editor rendering width in pixels.
	Width float64 `json:"width,omitempty" yaml:"width,omitempty"`
	// FontSize is the editor font size in pixels.
	FontSize float64 `json:"fontSize,omitempty" yaml:"font_size,omitempty"`
}

// ValidationError is returned when entry validation fails.
type ValidationError struct {
	Fields  []string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// Validate checks required fields and display preferences.
func (e *Entry) Validate() error {
	var invalid []string
	if !ValidID(e.ID) {
		invalid = append(invalid, "id")
	}
	if strings.TrimSpace(e.Title) == "" {
		invalid = append(invalid, "title")
	}
	if e.Date != "" {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			invalid = append(invalid, "date")
		}
	}
	if !nonNegativeFinite(e.Width) {
		invalid = append(invalid, "width")
	}
	if !nonNegativeFinite(e.FontSize) {
		invalid = append(invalid, "fontSize")
	}

	if len(invalid) > 0 {
		return &ValidationError{
			Fields:  invalid,
			Message: "invalid entry fields",
		}
	}
	return nil
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	clone := *e
	if e.Tags != nil {
		clone.Tags = append([]string(nil), e.Tags...)
	}
	return &clone
}

// ValidID reports whether id is non-empty and usable as a single file name:
// no path separators and no "..".
func ValidID(id string) bool {
	if id == "" || id == "." || strings.Contains(id, "..") {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateID derives an entry ID from its date and title.
// Format: <date>-<title-slug>, e.g. 2026-01-15-morning-pages.
func GenerateID(title, date string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "entry"
	}
	if date == "" {
		return slug
	}
	return date + "-" + slug
}

// Parse reads an entry from Markdown with optional YAML frontmatter. The
// body after the frontmatter becomes Text.
func Parse(data []byte) (*Entry, error) {
	frontmatter, body := splitFrontmatter(string(data))

	var e Entry
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &e); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}
	e.Text = body
	return &e, nil
}

// LoadFile reads an entry file. Missing IDs default to the file name without
// extension and missing titles to the ID.
func LoadFile(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", path, err)
	}

	e, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing entry %s: %w", path, err)
	}

	if e.ID == "" {
		e.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if e.Title == "" {
		e.Title = e.ID
	}
	return e, nil
}

// splitFrontmatter separates YAML frontmatter from the body. Frontmatter is
// delimited by --- lines at the very start of the file. The body is kept
// verbatim apart from the newline that ends the closing delimiter.
func splitFrontmatter(raw string) (frontmatter, body string) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if !strings.HasPrefix(raw, "---\n") && !strings.HasPrefix(raw, "---\r\n") {
		return "", raw
	}

	rest := raw[strings.Index(raw, "\n")+1:]
	if strings.HasPrefix(rest, "---") {
		return "", trimDelimiterLine(rest[3:])
	}

	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}
	return before, trimDelimiterLine(after)
}

// trimDelimiterLine drops the remainder of a closing --- line.
func trimDelimiterLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 && strings.TrimSpace(s[:idx]) == "" {
		return s[idx+1:]
	}
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// AsValidationError checks if err is a ValidationError and extracts it.
func AsValidationError(err error, target **ValidationError) bool {
	return errors.As(err, target)
}

func nonNegativeFinite(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
