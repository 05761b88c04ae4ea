package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/shuffle/internal/format"
	"github.com/gorewood/shuffle/internal/measure"
)

// newFormatsCmd creates the formats command.
func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and text measurers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormats(cmd)
		},
	}
}

// runFormats executes the formats command.
func runFormats(cmd *cobra.Command) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	kinds := format.Kinds()
	measurers := make([]string, 0, len(measure.Kinds()))
	for _, k := range measure.Kinds() {
		measurers = append(measurers, string(k))
	}

	if printer.IsJSON() {
		formats := make([]map[string]any, 0, len(kinds))
		for _, kind := range kinds {
			formats = append(formats, map[string]any{
				"name":      string(kind),
				"extension": format.Extension(kind),
				"lineBreak": format.LineBreak(kind),
			})
		}
		return printer.WriteJSON(map[string]any{"formats": formats, "measurers": measurers})
	}

	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		rows = append(rows, []string{string(kind), format.Extension(kind), strconv.Quote(format.LineBreak(kind))})
	}
	printer.Table([]string{"FORMAT", "EXTENSION", "LINE BREAK"}, rows)
	printer.Println()
	for _, m := range measurers {
		printer.KeyValue("measurer", m)
	}
	return nil
}
