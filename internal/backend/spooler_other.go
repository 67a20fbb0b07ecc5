//go:build !windows

// internal/backend/spooler_other.go
package backend

import (
	"runtime"

	"print-bridge/pkg/printer"
)

// NativeSpoolerAPI is only available on Windows
func NativeSpoolerAPI() (SpoolerAPI, error) {
	return nil, printer.Unsupported("open spooler", runtime.GOOS)
}
