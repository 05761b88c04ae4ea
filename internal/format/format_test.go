package format

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name   string
		want   Kind
		wantOK bool
	}{
		{name: "markdown", want: Markdown, wantOK: true},
		{name: "MD", want: Markdown, wantOK: true},
		{name: " latex ", want: LaTeX, wantOK: true},
		{name: "tex", want: LaTeX, wantOK: true},
		{name: "json", want: JSON, wantOK: true},
		{name: "json-separated", want: JSONSeparated, wantOK: true},
		{name: "json_separated", want: JSONSeparated, wantOK: true},
		{name: "html", want: HTML, wantOK: true},
		{name: "rtf", want: Kind("rtf"), wantOK: false},
		{name: "", want: Kind(""), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKind(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseKind(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
			if got.Known() != tt.wantOK {
				t.Errorf("Known() = %v, want %v", got.Known(), tt.wantOK)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind Kind
		opts Options
		want string
	}{
		{
			name: "latex",
			text: "Hello world\n\nThis is Shuffle.",
			kind: LaTeX,
			want: "\\begin{document}\nHello world\n\nThis is Shuffle.\n\\end{document}",
		},
		{
			name: "markdown hard breaks",
			text: "one\n\ntwo\nthree",
			kind: Markdown,
			want: "one  \n\ntwo  \nthree  ",
		},
		{
			name: "markdown replaces trailing whitespace",
			text: "one \t\ntwo   ",
			kind: Markdown,
			want: "one  \ntwo  ",
		},
		{
			name: "markdown whitespace-only line untouched",
			text: "a\n   \nb",
			kind: Markdown,
			want: "a  \n   \nb  ",
		},
		{
			name: "markdown reflowed passes through",
			text: "one  \ntwo",
			kind: Markdown,
			opts: Options{Reflowed: true},
			want: "one  \ntwo",
		},
		{
			name: "json pretty",
			text: "a\nb",
			kind: JSON,
			want: "{\n  \"content\": \"a\\nb\"\n}",
		},
		{
			name: "json compact",
			text: "a\nb",
			kind: JSON,
			opts: Options{Compact: true},
			want: `{"content":"a\nb"}`,
		},
		{
			name: "json keeps angle brackets",
			text: "<b> & co",
			kind: JSON,
			opts: Options{Compact: true},
			want: `{"content":"<b> & co"}`,
		},
		{
			name: "json-separated pretty",
			text: "a\nb\nc",
			kind: JSONSeparated,
			want: "{\n  \"line 1\": \"a\",\n  \"line 2\": \"b\",\n  \"line 3\": \"c\"\n}",
		},
		{
			name: "json-separated compact",
			text: "a\nb",
			kind: JSONSeparated,
			opts: Options{Compact: true},
			want: `{"line 1":"a","line 2":"b"}`,
		},
		{
			name: "json-separated keeps empty segments",
			text: "a\n\nb",
			kind: JSONSeparated,
			opts: Options{Compact: true},
			want: `{"line 1":"a","line 2":"","line 3":"b"}`,
		},
		{
			name: "json-separated reflowed drops empty lines",
			text: "a\n\nb",
			kind: JSONSeparated,
			opts: Options{Compact: true, Reflowed: true},
			want: `{"line 1":"a","line 2":"b"}`,
		},
		{
			name: "json-separated reflowed empty text",
			text: "",
			kind: JSONSeparated,
			opts: Options{Reflowed: true},
			want: "{}",
		},
		{
			name: "html",
			text: "a\nb",
			kind: HTML,
			want: "<div>a<br>b</div>",
		},
		{
			name: "html escapes markup",
			text: "1 < 2 & <i>x</i>",
			kind: HTML,
			want: "<div>1 &lt; 2 &amp; &lt;i&gt;x&lt;/i&gt;</div>",
		},
		{
			name: "unknown passes through",
			text: "a\n\nb",
			kind: Kind("rtf"),
			want: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Serialize(tt.text, tt.kind, tt.opts)
			if got != tt.want {
				t.Errorf("Serialize(%q, %s) =\n%q\nwant\n%q", tt.text, tt.kind, got, tt.want)
			}
		})
	}
}

var jsonInputs = []string{
	"",
	"plain",
	"quotes \" and \\ backslashes",
	"line\nbreaks\n\nand\ttabs",
	"control \x01\x1f chars",
	"unicode 日本語 🎉",
	"invalid utf8 \xff\xfe",
	"</script><script>alert(1)</script>",
}

func TestSerialize_JSONAlwaysValid(t *testing.T) {
	for _, text := range jsonInputs {
		for _, compact := range []bool{false, true} {
			out := Serialize(text, JSON, Options{Compact: compact})

			var parsed struct {
				Content *string `json:"content"`
			}
			if err := json.Unmarshal([]byte(out), &parsed); err != nil {
				t.Fatalf("Serialize(%q, json, compact=%v) invalid JSON: %v\n%s", text, compact, err, out)
			}
			if parsed.Content == nil {
				t.Fatalf("missing content field in %s", out)
			}
			if utf8.ValidString(text) && text != *parsed.Content {
				t.Errorf("content = %q, want %q", *parsed.Content, text)
			}
			if compact && strings.Contains(out, "\n") {
				t.Errorf("compact output spans lines: %q", out)
			}
		}
	}
}

func TestSerialize_JSONSeparatedValidAndOrdered(t *testing.T) {
	text := strings.Join(jsonInputs, "\n")
	lines := strings.Split(text, "\n")

	for _, compact := range []bool{false, true} {
		out := Serialize(text, JSONSeparated, Options{Compact: compact})

		var parsed map[string]string
		if err := json.Unmarshal([]byte(out), &parsed); err != nil {
			t.Fatalf("invalid JSON (compact=%v): %v\n%s", compact, err, out)
		}
		if len(parsed) != len(lines) {
			t.Errorf("key count = %d, want %d", len(parsed), len(lines))
		}

		// Keys must appear in numeric order in the raw output.
		dec := json.NewDecoder(bytes.NewReader([]byte(out)))
		if _, err := dec.Token(); err != nil {
			t.Fatalf("reading opening token: %v", err)
		}
		for i := 1; dec.More(); i++ {
			key, err := dec.Token()
			if err != nil {
				t.Fatalf("reading key: %v", err)
			}
			if want := "line " + strconv.Itoa(i); key != want {
				t.Fatalf("key %d = %v, want %q", i, key, want)
			}
			if _, err := dec.Token(); err != nil {
				t.Fatalf("reading value: %v", err)
			}
		}
	}
}

func TestSerialize_JSONSeparatedScenario(t *testing.T) {
	out := Serialize("one\ntwo\ntwo\ntwo\nthree", JSONSeparated, Options{})

	var parsed map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	want := map[string]string{
		"line 1": "one",
		"line 2": "two",
		"line 3": "two",
		"line 4": "two",
		"line 5": "three",
	}
	if len(parsed) != len(want) {
		t.Fatalf("got %d keys, want %d: %v", len(parsed), len(want), parsed)
	}
	for key, value := range want {
		if parsed[key] != value {
			t.Errorf("%s = %q, want %q", key, parsed[key], value)
		}
	}
}

func TestSerialize_HTMLStructure(t *testing.T) {
	out := Serialize("a\nb", HTML, Options{})

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}

	divs := doc.Find("body > div")
	if divs.Length() != 1 {
		t.Fatalf("found %d top-level divs, want 1", divs.Length())
	}
	if got := divs.Find("br").Length(); got != 1 {
		t.Errorf("found %d <br>, want 1", got)
	}
	if got := divs.Text(); got != "ab" {
		t.Errorf("div text = %q, want %q", got, "ab")
	}
	if strings.Count(out, "<br>") != 1 || !strings.Contains(out, "a<br>b") {
		t.Errorf("expected a<br>b in %q", out)
	}
}

func TestSerialize_MarkdownRendersHardBreaks(t *testing.T) {
	out := Serialize("first line\nsecond line\n\nnew paragraph", Markdown, Options{})

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(out), &buf); err != nil {
		t.Fatalf("goldmark.Convert() error = %v", err)
	}

	rendered := buf.String()
	if !strings.Contains(rendered, "first line<br") || !strings.Contains(rendered, ">\nsecond line") {
		t.Errorf("expected a hard break between the first two lines, got:\n%s", rendered)
	}
	if strings.Count(rendered, "<p>") != 2 {
		t.Errorf("expected two paragraphs, got:\n%s", rendered)
	}
}

func TestSerialize_MarkdownEveryNonEmptyLineEndsWithTwoSpaces(t *testing.T) {
	text := "alpha\nbeta  \n\n\tgamma\t\n\ndelta"
	out := Serialize(text, Markdown, Options{})

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, "  ") || strings.HasSuffix(line, "   ") {
			t.Errorf("line %q does not end with exactly two spaces", line)
		}
	}
}

func TestLineBreakAndExtension(t *testing.T) {
	tests := []struct {
		kind      Kind
		lineBreak string
		ext       string
	}{
		{Markdown, "  \n", ".md"},
		{LaTeX, "\n", ".tex"},
		{JSON, "\n", ".json"},
		{JSONSeparated, "\n", ".json"},
		{HTML, "\n", ".html"},
		{Kind("other"), "\n", ".txt"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := LineBreak(tt.kind); got != tt.lineBreak {
				t.Errorf("LineBreak(%s) = %q, want %q", tt.kind, got, tt.lineBreak)
			}
			if got := Extension(tt.kind); got != tt.ext {
				t.Errorf("Extension(%s) = %q, want %q", tt.kind, got, tt.ext)
			}
		})
	}
}

