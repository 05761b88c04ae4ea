package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/shuffle/internal/config"
	"github.com/gorewood/shuffle/internal/entry"
)

// --- Test helpers ---

// testDefaults measures 10px per rune at font size 10.
func testDefaults() config.Config {
	cfg := config.Defaults()
	cfg.Advance = 1
	cfg.FontSize = 10
	return cfg
}

func makeStore(t *testing.T, entries ...*entry.Entry) *entry.Store {
	t.Helper()
	return entry.NewStore(entries...)
}

func sampleEntries() []*entry.Entry {
	return []*entry.Entry{
		{ID: "a", Title: "Morning", Text: "coffee and notes", Date: "2026-01-10", Tags: []string{"daily"}},
		{ID: "b", Title: "Standup", Text: "shipped export", Date: "2026-01-12", Tags: []string{"work"}},
		{ID: "c", Title: "Evening", Text: "read a book", Date: "2026-01-12", Width: 60, FontSize: 10},
	}
}

func call[In, Out any](t *testing.T, h mcp.ToolHandlerFor[In, Out], in In) Out {
	t.Helper()
	_, out, err := h(context.Background(), &mcp.CallToolRequest{}, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

// --- Transform handler tests ---

func TestHandleTransform(t *testing.T) {
	tests := []struct {
		name         string
		input        TransformInput
		want         string
		wantReflowed bool
	}{
		{
			name:  "markdown defaults",
			input: TransformInput{Text: "a\n\n\n\nb"},
			want:  "a  \n\nb  ",
		},
		{
			name:  "latex",
			input: TransformInput{Text: "Hello\nWorld", Options: Settings{Format: "tex"}},
			want:  "\\begin{document}\nHello\nWorld\n\\end{document}",
		},
		{
			name: "html escapes",
			input: TransformInput{Text: "<b>\nx", Options: Settings{Format: "html"}},
			want: "<div>&lt;b&gt;<br>x</div>",
		},
		{
			name: "reflow with width",
			input: TransformInput{Text: "aaaa bbbb", Options: Settings{
				Format: "json-separated", PreserveMargins: boolPtr(true), Compact: boolPtr(true), Width: 60,
			}},
			want:         `{"line 1":"aaaa","line 2":"bbbb"}`,
			wantReflowed: true,
		},
		{
			name: "padding narrows the line",
			input: TransformInput{Text: "aa bb", Options: Settings{
				Format: "latex", PreserveMargins: boolPtr(true), Width: 70, Padding: floatPtr(30),
			}},
			want:         "\\begin{document}\naa\nbb\n\\end{document}",
			wantReflowed: true,
		},
		{
			name: "preserve margins without width degrades",
			input: TransformInput{Text: "aaaa bbbb", Options: Settings{
				Format: "json", PreserveMargins: boolPtr(true), Compact: boolPtr(true),
			}},
			want: `{"content":"aaaa bbbb"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := call(t, handleTransform(testDefaults()), tt.input)
			if out.Output != tt.want {
				t.Errorf("Output = %q, want %q", out.Output, tt.want)
			}
			if out.Reflowed != tt.wantReflowed {
				t.Errorf("Reflowed = %v, want %v", out.Reflowed, tt.wantReflowed)
			}
		})
	}
}

func TestHandleTransform_InvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
	}{
		{"unknown format", Settings{Format: "rtf"}},
		{"unknown measure", Settings{Measure: "canvas"}},
		{"unknown pdf font", Settings{Measure: "pdf", Font: "Papyrus"}},
		{"negative width", Settings{Width: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handleTransform(testDefaults())
			_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, TransformInput{Text: "x", Options: tt.settings})
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHandleFormats(t *testing.T) {
	out := call(t, handleFormats(), struct{}{})
	if len(out.Formats) != 5 {
		t.Fatalf("len(Formats) = %d, want 5", len(out.Formats))
	}
	if out.Formats[3].Name != "json-separated" || out.Formats[3].Extension != ".json" {
		t.Errorf("Formats[3] = %+v", out.Formats[3])
	}
}

// --- Entry handler tests ---

func TestHandleEntryCreate(t *testing.T) {
	store := makeStore(t)
	out := call(t, handleEntryCreate(store), EntryInput{Title: "First Light", Date: "2026-01-15", Text: "hello"})

	if out.Entry.ID != "2026-01-15-first-light" {
		t.Errorf("ID = %q", out.Entry.ID)
	}
	if store.Len() != 1 {
		t.Errorf("store.Len() = %d, want 1", store.Len())
	}
}

func TestHandleEntryCreate_Errors(t *testing.T) {
	store := makeStore(t, sampleEntries()...)
	handler := handleEntryCreate(store)

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, EntryInput{ID: "a", Title: "dup"})
	if !errors.Is(err, entry.ErrConflict) {
		t.Errorf("duplicate ID error = %v, want ErrConflict", err)
	}

	_, _, err = handler(context.Background(), &mcp.CallToolRequest{}, EntryInput{Title: "  "})
	var verr *entry.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("blank title error = %v, want ValidationError", err)
	}
}

func TestHandleEntryList(t *testing.T) {
	tests := []struct {
		name  string
		input ListInput
		want  []string
	}{
		{name: "all", input: ListInput{}, want: []string{"a", "b", "c"}},
		{name: "search", input: ListInput{Query: "EXPORT"}, want: []string{"b"}},
		{name: "search tag", input: ListInput{Query: "daily"}, want: []string{"a"}},
		{name: "date", input: ListInput{Date: "2026-01-12"}, want: []string{"b", "c"}},
		{name: "since", input: ListInput{Since: "2026-01-11"}, want: []string{"b", "c"}},
		{name: "until", input: ListInput{Until: "2026-01-11"}, want: []string{"a"}},
		{name: "tags", input: ListInput{Tags: []string{"work", "daily"}}, want: []string{"a", "b"}},
		{name: "no match", input: ListInput{Query: "nothing"}, want: []string{}},
	}

	store := makeStore(t, sampleEntries()...)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := call(t, handleEntryList(store), tt.input)
			ids := make([]string, 0, len(out.Entries))
			for _, e := range out.Entries {
				ids = append(ids, e.ID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("IDs = %v, want %v", ids, tt.want)
			}
			if out.Count != len(tt.want) {
				t.Errorf("Count = %d, want %d", out.Count, len(tt.want))
			}
			if out.Entries == nil {
				t.Error("Entries should be an empty list, not nil")
			}
		})
	}
}

func TestHandleEntryUpdate(t *testing.T) {
	store := makeStore(t, sampleEntries()...)
	handler := handleEntryUpdate(store)

	out := call(t, handler, EntryInput{ID: "b", Title: "Retro", Date: "2026-01-12"})
	if out.Entry.Title != "Retro" {
		t.Errorf("Title = %q", out.Entry.Title)
	}

	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, EntryInput{Title: "x"}); err == nil {
		t.Error("missing id expected error")
	}
	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, EntryInput{ID: "zzz", Title: "x"})
	if !errors.Is(err, entry.ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestHandleEntryDelete(t *testing.T) {
	store := makeStore(t, sampleEntries()...)
	handler := handleEntryDelete(store)

	out := call(t, handler, IDInput{ID: "b"})
	if out.Deleted != "b" || out.Remaining != 2 {
		t.Errorf("out = %+v", out)
	}

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, IDInput{ID: "b"})
	if !errors.Is(err, entry.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestHandleEntryMove(t *testing.T) {
	tests := []struct {
		name  string
		input MoveInput
		want  []string
	}{
		{name: "to front", input: MoveInput{ID: "c", Index: 0}, want: []string{"c", "a", "b"}},
		{name: "to middle", input: MoveInput{ID: "a", Index: 1}, want: []string{"b", "a", "c"}},
		{name: "clamped high", input: MoveInput{ID: "a", Index: 99}, want: []string{"b", "c", "a"}},
		{name: "clamped low", input: MoveInput{ID: "b", Index: -3}, want: []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := makeStore(t, sampleEntries()...)
			out := call(t, handleEntryMove(store), tt.input)
			if !slices.Equal(out.Order, tt.want) {
				t.Errorf("Order = %v, want %v", out.Order, tt.want)
			}
		})
	}
}

func TestHandleEntryTransform(t *testing.T) {
	store := makeStore(t, sampleEntries()...)
	handler := handleEntryTransform(store, testDefaults())

	// Entry c carries width 60 and font size 10: six runes per line.
	out := call(t, handler, EntryTransformInput{ID: "c", Options: Settings{
		Format: "latex", PreserveMargins: boolPtr(true),
	}})
	want := "\\begin{document}\nread a\nbook\n\\end{document}"
	if out.Output != want || !out.Reflowed {
		t.Errorf("out = %+v, want output %q", out, want)
	}

	// An explicit width overrides the entry's preference.
	out = call(t, handler, EntryTransformInput{ID: "c", Options: Settings{
		Format: "latex", PreserveMargins: boolPtr(true), Width: 200,
	}})
	want = "\\begin{document}\nread a book\n\\end{document}"
	if out.Output != want {
		t.Errorf("Output = %q, want %q", out.Output, want)
	}

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, EntryTransformInput{ID: "missing"})
	if !errors.Is(err, entry.ErrNotFound) {
		t.Errorf("missing entry error = %v, want ErrNotFound", err)
	}
}

// --- Server tests ---

func TestNewServer_ListAndCall(t *testing.T) {
	ctx := context.Background()
	server := NewServer("test-version", makeStore(t, sampleEntries()...), testDefaults())

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}
	defer serverSession.Close() //nolint:errcheck

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	defer session.Close() //nolint:errcheck

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	for _, want := range []string{
		"transform", "formats", "entry_create", "entry_list",
		"entry_update", "entry_delete", "entry_move", "entry_transform",
	} {
		if !slices.Contains(names, want) {
			t.Errorf("tool %q not registered (have %v)", want, names)
		}
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "transform",
		Arguments: map[string]any{"text": "a\n\n\nb", "options": map[string]any{"format": "html"}},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatalf("CallTool returned tool error: %+v", res.Content)
	}

	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatal(err)
	}
	var out TransformOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding structured content %s: %v", raw, err)
	}
	if out.Output != "<div>a<br><br>b</div>" {
		t.Errorf("Output = %q", out.Output)
	}
	if !strings.Contains(out.Format, "html") {
		t.Errorf("Format = %q", out.Format)
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
