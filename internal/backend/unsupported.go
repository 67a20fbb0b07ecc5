// internal/backend/unsupported.go
package backend

import (
	"context"

	"print-bridge/pkg/printer"
)

// UnsupportedBackend answers every call with PlatformUnsupportedError
type UnsupportedBackend struct {
	goos string
}

// NewUnsupportedBackend creates the fallback backend for an unknown OS family
func NewUnsupportedBackend(goos string) *UnsupportedBackend {
	return &UnsupportedBackend{goos: goos}
}

func (b *UnsupportedBackend) Name() string {
	return BackendUnsupported
}

func (b *UnsupportedBackend) Enumerate(ctx context.Context) ([]string, error) {
	return nil, printer.Unsupported("enumerate", b.goos)
}

func (b *UnsupportedBackend) SubmitRaw(ctx context.Context, printerName string, payload []byte, docLabel string) error {
	return printer.Unsupported("submit raw", b.goos)
}

func (b *UnsupportedBackend) SubmitText(ctx context.Context, printerName string, text string, docLabel string) error {
	return printer.Unsupported("submit text", b.goos)
}
