package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/shuffle/internal/config"
	"github.com/gorewood/shuffle/internal/entry"
	"github.com/gorewood/shuffle/internal/transform"
)

// EntryInput carries the editable fields of an entry.
type EntryInput struct {
	ID          string   `json:"id,omitempty"          jsonschema:"entry ID (generated on create when empty)"`
	Title       string   `json:"title"                 jsonschema:"entry title (required)"`
	Text        string   `json:"text,omitempty"        jsonschema:"entry body"`
	Date        string   `json:"date,omitempty"        jsonschema:"entry date as YYYY-MM-DD (defaults to today on create)"`
	Description string   `json:"description,omitempty" jsonschema:"short description"`
	Tags        []string `json:"tags,omitempty"        jsonschema:"tags for categorization"`
	Width       float64  `json:"width,omitempty"       jsonschema:"editor width in pixels used when transforming"`
	FontSize    float64  `json:"font_size,omitempty"   jsonschema:"editor font size in pixels used when transforming"`
}

func (in EntryInput) toEntry() entry.Entry {
	return entry.Entry{
		ID:          in.ID,
		Title:       in.Title,
		Text:        in.Text,
		Date:        in.Date,
		Description: in.Description,
		Tags:        in.Tags,
		Width:       in.Width,
		FontSize:    in.FontSize,
	}
}

// EntryOutput wraps a single entry.
type EntryOutput struct {
	Entry *entry.Entry `json:"entry" jsonschema:"the entry"`
}

func handleEntryCreate(store *entry.Store) mcp.ToolHandlerFor[EntryInput, EntryOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input EntryInput) (*mcp.CallToolResult, EntryOutput, error) {
		created, err := store.Create(input.toEntry())
		if err != nil {
			return nil, EntryOutput{}, fmt.Errorf("creating entry: %w", err)
		}
		return nil, EntryOutput{Entry: created}, nil
	}
}

func handleEntryUpdate(store *entry.Store) mcp.ToolHandlerFor[EntryInput, EntryOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input EntryInput) (*mcp.CallToolResult, EntryOutput, error) {
		if input.ID == "" {
			return nil, EntryOutput{}, errors.New("id is required")
		}
		updated, err := store.Update(input.toEntry())
		if err != nil {
			return nil, EntryOutput{}, fmt.Errorf("updating entry: %w", err)
		}
		return nil, EntryOutput{Entry: updated}, nil
	}
}

// ListInput is the input for the entry_list tool.
type ListInput struct {
	Query string   `json:"query,omitempty" jsonschema:"case-insensitive search over title, text, description and tags"`
	Date  string   `json:"date,omitempty"  jsonschema:"only entries on this YYYY-MM-DD date"`
	Since string   `json:"since,omitempty" jsonschema:"only entries on or after this YYYY-MM-DD date"`
	Until string   `json:"until,omitempty" jsonschema:"only entries on or before this YYYY-MM-DD date"`
	Tags  []string `json:"tags,omitempty"  jsonschema:"filter by tags (OR logic)"`
}

// ListOutput is the output for the entry_list tool.
type ListOutput struct {
	Count   int            `json:"count"   jsonschema:"number of entries returned"`
	Entries []*entry.Entry `json:"entries" jsonschema:"matching entries in list order"`
}

func handleEntryList(store *entry.Store) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
		entries := store.Search(input.Query)
		if input.Date != "" {
			entries = entry.FilterByDateRange(entries, input.Date, input.Date)
		}
		entries = entry.FilterByDateRange(entries, input.Since, input.Until)
		entries = entry.FilterByTags(entries, input.Tags)
		if entries == nil {
			entries = []*entry.Entry{}
		}
		return nil, ListOutput{Count: len(entries), Entries: entries}, nil
	}
}

// IDInput selects an entry.
type IDInput struct {
	ID string `json:"id" jsonschema:"entry ID"`
}

// DeleteOutput is the output for the entry_delete tool.
type DeleteOutput struct {
	Deleted   string `json:"deleted"   jsonschema:"ID of the removed entry"`
	Remaining int    `json:"remaining" jsonschema:"number of entries left"`
}

func handleEntryDelete(store *entry.Store) mcp.ToolHandlerFor[IDInput, DeleteOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input IDInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := store.Delete(input.ID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting entry: %w", err)
		}
		return nil, DeleteOutput{Deleted: input.ID, Remaining: store.Len()}, nil
	}
}

// MoveInput is the input for the entry_move tool.
type MoveInput struct {
	ID    string `json:"id"    jsonschema:"entry ID"`
	Index int    `json:"index" jsonschema:"zero-based target position; out-of-range values are clamped"`
}

// MoveOutput lists the IDs in their new order.
type MoveOutput struct {
	Order []string `json:"order" jsonschema:"entry IDs in list order"`
}

func handleEntryMove(store *entry.Store) mcp.ToolHandlerFor[MoveInput, MoveOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input MoveInput) (*mcp.CallToolResult, MoveOutput, error) {
		if err := store.Move(input.ID, input.Index); err != nil {
			return nil, MoveOutput{}, fmt.Errorf("moving entry: %w", err)
		}
		entries := store.List()
		order := make([]string, 0, len(entries))
		for _, e := range entries {
			order = append(order, e.ID)
		}
		return nil, MoveOutput{Order: order}, nil
	}
}

// EntryTransformInput is the input for the entry_transform tool.
type EntryTransformInput struct {
	ID      string   `json:"id"                jsonschema:"entry ID"`
	Options Settings `json:"options,omitempty" jsonschema:"overrides for the server defaults; the entry's width and font size win over defaults"`
}

func handleEntryTransform(store *entry.Store, defaults config.Config) mcp.ToolHandlerFor[EntryTransformInput, TransformOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input EntryTransformInput) (*mcp.CallToolResult, TransformOutput, error) {
		e, err := store.Get(input.ID)
		if err != nil {
			return nil, TransformOutput{}, fmt.Errorf("getting entry: %w", err)
		}

		base, err := buildRequest(defaults, input.Options)
		if err != nil {
			return nil, TransformOutput{}, err
		}
		req := transform.FromEntry(e, base)

		// Explicit call settings win over the entry's own preferences.
		if input.Options.Width != 0 {
			req.RenderWidth = input.Options.Width
		}
		if input.Options.FontSize != 0 {
			req.FontSize = input.Options.FontSize
		}
		return nil, runTransform(req), nil
	}
}
