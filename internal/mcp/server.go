// Package mcp provides a Model Context Protocol server for shuffle.
// It exposes text transformation and the in-session entry list as MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/shuffle/internal/config"
	"github.com/gorewood/shuffle/internal/entry"
)

// NewServer creates an MCP server with all shuffle tools registered.
// Tool calls that leave a setting unset fall back to defaults.
func NewServer(version string, store *entry.Store, defaults config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "shuffle",
		Version: version,
	}, nil)
	registerTools(server, store, defaults)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for tools without side effects.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that add or reorder entries.
func writeAnnotations(idempotent bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  idempotent,
		OpenWorldHint:   boolPtr(false),
	}
}

// destructiveAnnotations returns annotations for tools that remove or overwrite entries.
func destructiveAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, store *entry.Store, defaults config.Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "transform",
		Description: "Convert plain text to markdown, latex, json, json-separated or html. " +
			"With preserve_margins and a width, lines are re-wrapped the way the editor displays them.",
		Annotations: readOnlyAnnotations(),
	}, handleTransform(defaults))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "formats",
		Description: "List the supported output formats with their file extensions.",
		Annotations: readOnlyAnnotations(),
	}, handleFormats())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "entry_create",
		Description: "Add a journal entry. The ID is generated from date and title when omitted; the date defaults to today.",
		Annotations: writeAnnotations(false),
	}, handleEntryCreate(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "entry_list",
		Description: "List journal entries in order. Optionally search title, text, description and tags, or filter by date and tags.",
		Annotations: readOnlyAnnotations(),
	}, handleEntryList(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "entry_update",
		Description: "Replace the fields of an existing entry, keeping its position.",
		Annotations: destructiveAnnotations(),
	}, handleEntryUpdate(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "entry_delete",
		Description: "Remove a journal entry by ID.",
		Annotations: destructiveAnnotations(),
	}, handleEntryDelete(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "entry_move",
		Description: "Move an entry to a new zero-based position in the list.",
		Annotations: writeAnnotations(true),
	}, handleEntryMove(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "entry_transform",
		Description: "Transform a stored entry's text, using the entry's width and font size unless overridden.",
		Annotations: readOnlyAnnotations(),
	}, handleEntryTransform(store, defaults))
}
