package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/shuffle/internal/config"
	"github.com/gorewood/shuffle/internal/format"
	"github.com/gorewood/shuffle/internal/transform"
)

// Settings are the per-call overrides shared by the transform tools.
// Zero values keep the server defaults.
type Settings struct {
	Format          string   `json:"format,omitempty"           jsonschema:"markdown, latex, json, json-separated or html"`
	PreserveMargins *bool    `json:"preserve_margins,omitempty" jsonschema:"re-wrap lines to the editor width"`
	Compact         *bool    `json:"compact,omitempty"          jsonschema:"emit json without indentation"`
	Width           float64  `json:"width,omitempty"            jsonschema:"editor width in pixels"`
	FontSize        float64  `json:"font_size,omitempty"        jsonschema:"font size in pixels"`
	Padding         *float64 `json:"padding,omitempty"          jsonschema:"total horizontal padding in pixels"`
	Measure         string   `json:"measure,omitempty"          jsonschema:"text measurer: mono, truetype or pdf"`
	Font            string   `json:"font,omitempty"             jsonschema:"TrueType file path or PDF core font family"`
}

// TransformInput is the input for the transform tool.
type TransformInput struct {
	Text    string   `json:"text"              jsonschema:"the text to convert"`
	Options Settings `json:"options,omitempty" jsonschema:"overrides for the server defaults"`
}

// TransformOutput is the result of a transformation.
type TransformOutput struct {
	Format   string `json:"format"   jsonschema:"the format that was produced"`
	Reflowed bool   `json:"reflowed" jsonschema:"whether lines were re-wrapped"`
	Output   string `json:"output"   jsonschema:"the converted text"`
}

func handleTransform(defaults config.Config) mcp.ToolHandlerFor[TransformInput, TransformOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TransformInput) (*mcp.CallToolResult, TransformOutput, error) {
		req, err := buildRequest(defaults, input.Options)
		if err != nil {
			return nil, TransformOutput{}, err
		}
		req.Text = input.Text
		return nil, runTransform(req), nil
	}
}

// FormatInfo describes one output format.
type FormatInfo struct {
	Name      string `json:"name"      jsonschema:"format name"`
	Extension string `json:"extension" jsonschema:"file extension used on export"`
}

// FormatsOutput is the output for the formats tool.
type FormatsOutput struct {
	Formats []FormatInfo `json:"formats" jsonschema:"supported formats"`
}

func handleFormats() mcp.ToolHandlerFor[struct{}, FormatsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, FormatsOutput, error) {
		kinds := format.Kinds()
		out := FormatsOutput{Formats: make([]FormatInfo, 0, len(kinds))}
		for _, kind := range kinds {
			out.Formats = append(out.Formats, FormatInfo{Name: string(kind), Extension: format.Extension(kind)})
		}
		return nil, out, nil
	}
}

// buildRequest applies settings over defaults and builds the measurer.
// Unlike the library, tools reject unknown formats.
func buildRequest(defaults config.Config, s Settings) (transform.Request, error) {
	cfg := defaults
	if s.Format != "" {
		cfg.Format = s.Format
	}
	if s.PreserveMargins != nil {
		cfg.PreserveMargins = *s.PreserveMargins
	}
	if s.Compact != nil {
		cfg.Compact = *s.Compact
	}
	if s.Width != 0 {
		cfg.Width = s.Width
	}
	if s.FontSize != 0 {
		cfg.FontSize = s.FontSize
	}
	if s.Padding != nil {
		cfg.Padding = *s.Padding
	}
	if s.Measure != "" {
		cfg.Measure = s.Measure
	}
	if s.Font != "" {
		cfg.Font = s.Font
	}

	if err := cfg.Validate(); err != nil {
		return transform.Request{}, err
	}
	req, err := cfg.Request()
	if err != nil {
		return transform.Request{}, fmt.Errorf("building measurer: %w", err)
	}
	return req, nil
}

func runTransform(req transform.Request) TransformOutput {
	return TransformOutput{
		Format:   string(req.Format),
		Reflowed: transform.WillReflow(req),
		Output:   transform.Transform(req),
	}
}
