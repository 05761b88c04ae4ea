// Package output provides structured output handling for the shuffle CLI.
//
// Every command writes through a Printer so the same code serves people at a
// terminal and scripts that pass --json.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "Exported 3 entries", "dir": dir})
//	printer.Error(err)
//	printer.Warn("unknown format %q, writing text unchanged", name)
//
// In JSON mode results are objects, errors are {"error": "message", "code": N}
// and warnings are {"warning": "message"}. In human mode errors and warnings
// go to the error writer set with WithStderr, styled with lipgloss when the
// output is a terminal (see ResolveColorMode for --color).
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad flags, unreadable entry)
//	output.ExitSystemError // 2: System error (I/O, font loading)
//	output.ExitConflict    // 3: Conflict (two entries export to one file)
//
// Use NewUserError, NewSystemError and NewConflictError to build errors that
// carry these codes; GetExitCode maps any error back to one.
package output
