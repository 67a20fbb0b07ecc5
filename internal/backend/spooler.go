// internal/backend/spooler.go
package backend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/pkg/printer"
)

// rawDatatype tells the spooler to pass bytes to the device without rendering
const rawDatatype = "RAW"

// SpoolHandle is an open printer handle
type SpoolHandle uintptr

// SpoolerAPI is the job-based spooler surface used by SpoolerBackend.
// On Windows it is backed by winspool.drv.
type SpoolerAPI interface {
	OpenPrinter(name string) (SpoolHandle, error)
	ClosePrinter(h SpoolHandle) error
	StartDocPrinter(h SpoolHandle, docName, datatype string) (uint32, error)
	EndDocPrinter(h SpoolHandle) error
	StartPagePrinter(h SpoolHandle) error
	EndPagePrinter(h SpoolHandle) error
	WritePrinter(h SpoolHandle, data []byte) (uint32, error)
}

// SpoolerBackend submits raw jobs through the OS spooler handle lifecycle
type SpoolerBackend struct {
	config config.SpoolerConfig
	api    SpoolerAPI
	runner printer.CommandRunner
	logger *zap.Logger
}

// NewSpoolerBackend creates a spooler backend
func NewSpoolerBackend(cfg config.SpoolerConfig, api SpoolerAPI, runner printer.CommandRunner, logger *zap.Logger) *SpoolerBackend {
	return &SpoolerBackend{
		config: cfg,
		api:    api,
		runner: runner,
		logger: logger.With(zap.String("backend", BackendSpooler)),
	}
}

// Name implements printer.Backend
func (b *SpoolerBackend) Name() string {
	return BackendSpooler
}

// Enumerate runs the printer-management query, one name per output line
func (b *SpoolerBackend) Enumerate(ctx context.Context) ([]string, error) {
	stdout, stderr, exitCode, err := b.runner.Run(ctx, b.config.EnumCommand, b.config.EnumArgs...)
	if err != nil {
		return nil, printer.NewError(printer.KindDiscovery, b.config.EnumCommand, "",
			"could not run printer query", err)
	}
	if exitCode != 0 {
		return nil, printer.NewError(printer.KindDiscovery, b.config.EnumCommand, "",
			fmt.Sprintf("exit status %d: %s", exitCode, strings.TrimSpace(string(stderr))), nil)
	}

	return ParseNameList(stdout), nil
}

// ParseNameList splits output into trimmed, non-blank lines
func ParseNameList(out []byte) []string {
	names := []string{}
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SubmitRaw runs open, start doc, start page + write, then end page, end doc
// and close. Every phase that succeeded is released on the way out.
func (b *SpoolerBackend) SubmitRaw(ctx context.Context, printerName string, payload []byte, docLabel string) error {
	if b.api == nil {
		return printer.NewError(printer.KindPlatformUnsupported, "submit", printerName,
			"spooler API is not available on this platform", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	handle, err := b.api.OpenPrinter(printerName)
	if err != nil {
		return printer.NewError(printer.KindOpen, "OpenPrinter", printerName, "", err)
	}
	defer func() {
		if err := b.api.ClosePrinter(handle); err != nil {
			b.logger.Warn("ClosePrinter failed", zap.String("printer", printerName), zap.Error(err))
		}
	}()

	jobID, err := b.api.StartDocPrinter(handle, docLabel, rawDatatype)
	if err != nil {
		return printer.NewError(printer.KindJobStart, "StartDocPrinter", printerName, "", err)
	}
	defer func() {
		if err := b.api.EndDocPrinter(handle); err != nil {
			b.logger.Warn("EndDocPrinter failed", zap.String("printer", printerName), zap.Error(err))
		}
	}()

	if err := b.api.StartPagePrinter(handle); err != nil {
		return printer.NewError(printer.KindWrite, "StartPagePrinter", printerName, "", err)
	}
	defer func() {
		if err := b.api.EndPagePrinter(handle); err != nil {
			b.logger.Warn("EndPagePrinter failed", zap.String("printer", printerName), zap.Error(err))
		}
	}()

	written, err := b.api.WritePrinter(handle, payload)
	if err != nil {
		return printer.NewError(printer.KindWrite, "WritePrinter", printerName, "", err)
	}
	if int(written) != len(payload) {
		return printer.PartialWrite(printerName, int(written), len(payload))
	}

	b.logger.Debug("Spooler job written",
		zap.String("printer", printerName),
		zap.Uint32("job_id", jobID),
		zap.Int("bytes", len(payload)),
	)
	return nil
}

// SubmitText normalises line endings to CRLF before a raw submission
func (b *SpoolerBackend) SubmitText(ctx context.Context, printerName string, text string, docLabel string) error {
	return b.SubmitRaw(ctx, printerName, []byte(NormalizeCRLF(text)), docLabel)
}

// NormalizeCRLF rewrites every LF, CR or CRLF line break as CRLF
func NormalizeCRLF(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.ReplaceAll(text, "\n", "\r\n")
}
