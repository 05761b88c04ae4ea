// Package export writes transformed journal entries to files.
//
// Each entry runs through the transform pipeline with the caller's base
// request (format, margins, measurer) and the entry's own width and font
// size, then lands in its own file:
//
//	base := transform.Request{Format: format.LaTeX, PreserveMargins: true, Measurer: m}
//	paths, err := export.WriteFiles(entries, "/path/to/dir", base)
//
// # File Naming
//
// Files are named <entry-id><ext>, where the extension follows the format:
//   - markdown: .md
//   - latex: .tex
//   - json, json-separated: .json
//   - html: .html
//   - anything else: .txt
//
// Files are written with 0600 permissions.
package export
