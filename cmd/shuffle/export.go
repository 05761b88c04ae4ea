package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/shuffle/internal/entry"
	"github.com/gorewood/shuffle/internal/export"
	"github.com/gorewood/shuffle/internal/output"
	"github.com/gorewood/shuffle/internal/transform"
)

// exportOptions holds the export-only flags.
type exportOptions struct {
	out   string
	tags  []string
	since string
	until string
	force bool
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var flags transformFlags
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <files...>",
		Short: "Convert many entries at once",
		Long: `Convert entry files in one pass, each with its own width and font size.

Entry IDs come from frontmatter or the file name. With --out every entry is
written to <id><ext> in the directory; otherwise entries are printed to
stdout separated by "---" lines.

Examples:
  shuffle export journal/*.md --format html --out ./site/
  shuffle export journal/*.md -f latex --tag travel --since 2026-01-01
  shuffle export journal/*.md -f json --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, &flags, opts, args)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (if omitted, writes to stdout)")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "Only entries with any of these tags")
	cmd.Flags().StringVar(&opts.since, "since", "", "Only entries dated on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.until, "until", "", "Only entries dated on or before YYYY-MM-DD")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite existing files in --out")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, flags *transformFlags, opts exportOptions, files []string) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	if err := validateDateFlags(opts); err != nil {
		return fail(printer, err)
	}

	base, err := flags.request(cmd, printer)
	if err != nil {
		return fail(printer, err)
	}

	entries, err := loadEntries(files)
	if err != nil {
		return fail(printer, err)
	}
	entries = entry.FilterByTags(entries, opts.tags)
	entries = entry.FilterByDateRange(entries, opts.since, opts.until)

	if opts.out == "" {
		return writeExportToStdout(cmd, printer, flags, entries, base)
	}
	return writeExportToDirectory(cmd, printer, flags, entries, base, opts)
}

// validateDateFlags checks --since and --until.
func validateDateFlags(opts exportOptions) error {
	bounds := []struct{ name, value string }{{"--since", opts.since}, {"--until", opts.until}}
	for _, b := range bounds {
		if b.value == "" {
			continue
		}
		if _, err := time.Parse(entry.DateLayout, b.value); err != nil {
			return output.NewUserError(fmt.Sprintf("%s must be a YYYY-MM-DD date (got %q)", b.name, b.value))
		}
	}
	if opts.since != "" && opts.until != "" && opts.since > opts.until {
		return output.NewUserError("--since must not be after --until")
	}
	return nil
}

// loadEntries reads each file into a store so duplicate IDs are caught.
func loadEntries(files []string) ([]*entry.Entry, error) {
	store := entry.NewStore()
	for _, path := range files {
		e, err := entry.LoadFile(path)
		if err != nil {
			return nil, output.NewUserErrorWithCause(err.Error(), err)
		}
		if _, err := store.Create(*e); err != nil {
			if errors.Is(err, entry.ErrConflict) {
				return nil, output.NewConflictError(fmt.Sprintf("duplicate entry ID %q in %s", e.ID, path))
			}
			return nil, output.NewUserErrorWithCause(fmt.Sprintf("%s: %v", path, err), err)
		}
	}
	return store.List(), nil
}

// writeExportToStdout prints every entry, or a JSON array of results.
func writeExportToStdout(
	cmd *cobra.Command, printer *output.Printer, flags *transformFlags,
	entries []*entry.Entry, base transform.Request,
) error {
	if printer.IsJSON() {
		results := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			req := flags.pinFlags(cmd, transform.FromEntry(e, base))
			results = append(results, map[string]any{
				"id":       e.ID,
				"format":   string(req.Format),
				"reflowed": transform.WillReflow(req),
				"output":   transform.Transform(req),
			})
		}
		return printer.WriteJSON(results)
	}

	for i, e := range entries {
		if i > 0 {
			printer.Println("---")
		}
		printer.Raw(transform.Transform(flags.pinFlags(cmd, transform.FromEntry(e, base))))
		printer.Println()
	}
	return nil
}

// writeExportToDirectory writes entries to files in opts.out.
func writeExportToDirectory(
	cmd *cobra.Command, printer *output.Printer, flags *transformFlags,
	entries []*entry.Entry, base transform.Request, opts exportOptions,
) error {
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fail(printer, output.NewSystemErrorWithCause(fmt.Sprintf("failed to create output directory: %v", err), err))
	}

	if !opts.force {
		if err := checkExisting(entries, opts.out, base); err != nil {
			return fail(printer, err)
		}
	}

	paths, err := export.WriteFilesFunc(entries, opts.out, base.Format, func(e *entry.Entry) transform.Request {
		return flags.pinFlags(cmd, transform.FromEntry(e, base))
	})
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"format": string(base.Format),
			"count":  len(paths),
			"files":  paths,
		})
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Exported %d entries to %s", len(paths), opts.out),
	})
}

// checkExisting reports a conflict when an export target already exists.
func checkExisting(entries []*entry.Entry, dir string, base transform.Request) error {
	for _, e := range entries {
		target, err := export.Path(dir, e, base.Format)
		if err != nil {
			return err
		}
		if _, err := os.Stat(target); err == nil {
			return output.NewConflictError(fmt.Sprintf("%s already exists (use --force to overwrite)", target))
		}
	}
	return nil
}
