// Package output provides structured output and error handling for the moss CLI.
//
// Every command writes through a Printer, which switches between
// human-readable (lipgloss-styled) and JSON output based on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Pushed", "commit": sha})
//
// Diagnostics that must not pollute machine-readable stdout (sync warnings,
// secondary push failures, progress hints) go through Warn and Stderr, which
// write to the stderr writer installed with WithStderr.
//
// # Exit codes
//
//	output.ExitSuccess     // 0: operation completed
//	output.ExitUserError   // 1: bad arguments, missing configuration, nothing to show
//	output.ExitSystemError // 2: git, filesystem, or remote API failure
//	output.ExitConflict    // 3: push rejected (non-fast-forward) or repo state mismatch
//
// Errors created with NewUserError/NewSystemError/NewConflictError carry
// their code through the call stack; main resolves the process exit status
// with GetExitCode.
package output
