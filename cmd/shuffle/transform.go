package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/shuffle/internal/entry"
	"github.com/gorewood/shuffle/internal/output"
	"github.com/gorewood/shuffle/internal/transform"
)

// newTransformCmd creates the transform command.
func newTransformCmd() *cobra.Command {
	var flags transformFlags
	var outFlag string

	cmd := &cobra.Command{
		Use:   "transform [file|-]",
		Short: "Convert one entry or text to a format",
		Long: `Convert one entry to Markdown, LaTeX, JSON, line-separated JSON or HTML.

Input is a file or standard input ("-" or no argument). A leading YAML
frontmatter block is read as entry metadata: its width and font_size are
used for --preserve-margins unless --width or --font-size are given.

Examples:
  shuffle transform note.md -f latex
  shuffle transform note.md -f json-separated --preserve-margins --width 640
  echo "hello world" | shuffle transform -f html
  shuffle transform note.md -f md --preserve-margins --measure pdf --font Times --out note.out.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return runTransform(cmd, &flags, source, outFlag)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write the result to a file instead of stdout")

	return cmd
}

// runTransform executes the transform command.
func runTransform(cmd *cobra.Command, flags *transformFlags, source, outFlag string) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	base, err := flags.request(cmd, printer)
	if err != nil {
		return fail(printer, err)
	}

	e, err := readEntry(cmd.InOrStdin(), source)
	if err != nil {
		return fail(printer, err)
	}

	req := flags.pinFlags(cmd, transform.FromEntry(e, base))
	reflowed := transform.WillReflow(req)
	if req.PreserveMargins && !reflowed && req.Format.Known() {
		printer.Warn("--preserve-margins needs a positive --width larger than --padding; lines left unwrapped")
	}
	result := transform.Transform(req)

	if outFlag != "" {
		if err := os.WriteFile(outFlag, []byte(result), 0o600); err != nil {
			return fail(printer, output.NewSystemErrorWithCause(fmt.Sprintf("failed to write %s: %v", outFlag, err), err))
		}
	}

	return printTransformResult(printer, req, reflowed, result, outFlag)
}

// readEntry loads an entry from a file, or from r when source is "-".
func readEntry(r io.Reader, source string) (*entry.Entry, error) {
	if source != "-" {
		e, err := entry.LoadFile(source)
		if err != nil {
			return nil, output.NewUserErrorWithCause(err.Error(), err)
		}
		return e, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read stdin: "+err.Error(), err)
	}
	e, err := entry.Parse(data)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return e, nil
}

// printTransformResult writes the result, or a summary when it went to a file.
func printTransformResult(printer *output.Printer, req transform.Request, reflowed bool, result, outFlag string) error {
	if printer.IsJSON() {
		data := map[string]any{
			"format":   string(req.Format),
			"reflowed": reflowed,
		}
		if outFlag != "" {
			data["path"] = outFlag
		} else {
			data["output"] = result
		}
		return printer.Success(data)
	}

	if outFlag != "" {
		return printer.Success(map[string]any{"message": "Wrote " + outFlag})
	}
	printer.Raw(result)
	printer.Println()
	return nil
}
