// pkg/printer/interfaces.go
package printer

import (
	"context"
)

// Backend is the capability set every platform variant implements.
// All methods block for the duration of the underlying OS call.
type Backend interface {
	// Name identifies the variant (spooler, shell, unsupported)
	Name() string

	// Enumerate lists installed printer names as reported by the OS
	Enumerate(ctx context.Context) ([]string, error)

	// SubmitRaw sends payload to printerName untouched by the driver
	SubmitRaw(ctx context.Context, printerName string, payload []byte, docLabel string) error

	// SubmitText sends plain text, normalising line endings where the platform needs it
	SubmitText(ctx context.Context, printerName string, text string, docLabel string) error
}

// CommandRunner runs an external program to completion and returns its output.
// err is non-nil only when the process could not be started or waited on;
// a non-zero exit is reported through exitCode.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error)
}
