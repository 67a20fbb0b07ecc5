// internal/backend/shell.go
package backend

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/pkg/printer"
)

// noDestinations is what CUPS lpstat prints, with a non-zero exit, when no queue exists
const noDestinations = "No destinations added"

// ShellBackend drives the CUPS command-line utilities (lpstat, lp)
type ShellBackend struct {
	config     config.ShellConfig
	runner     printer.CommandRunner
	logger     *zap.Logger
	createTemp func(dir, pattern string) (*os.File, error)
}

// NewShellBackend creates a CUPS shell-utility backend
func NewShellBackend(cfg config.ShellConfig, runner printer.CommandRunner, logger *zap.Logger) *ShellBackend {
	return &ShellBackend{
		config:     cfg,
		runner:     runner,
		logger:     logger.With(zap.String("backend", BackendShell)),
		createTemp: os.CreateTemp,
	}
}

// Name implements printer.Backend
func (b *ShellBackend) Name() string {
	return BackendShell
}

// Enumerate runs the status listing command and extracts the name after each "printer" keyword
func (b *ShellBackend) Enumerate(ctx context.Context) ([]string, error) {
	stdout, stderr, exitCode, err := b.runner.Run(ctx, b.config.StatusCommand, b.config.StatusArgs...)
	if err != nil {
		return nil, printer.NewError(printer.KindDiscovery, b.config.StatusCommand, "",
			"could not run status command",
			printer.NewError(printer.KindShellInvocation, b.config.StatusCommand, "", "", err))
	}
	if exitCode != 0 {
		if bytes.Contains(stderr, []byte(noDestinations)) {
			return []string{}, nil
		}
		return nil, printer.NewError(printer.KindDiscovery, b.config.StatusCommand, "",
			fmt.Sprintf("exit status %d: %s", exitCode, strings.TrimSpace(string(stderr))), nil)
	}

	return ParseStatusOutput(stdout), nil
}

// ParseStatusOutput extracts printer names from lines of the form "printer <name> ..."
func ParseStatusOutput(out []byte) []string {
	names := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "printer" {
			continue
		}
		names = append(names, fields[1])
	}
	return names
}

// SubmitRaw spools payload through a private temp file and "lp -o raw".
// The temp file is removed on every path. The command's exit status is
// authoritative: diagnostics on a zero exit are logged as warnings only.
func (b *ShellBackend) SubmitRaw(ctx context.Context, printerName string, payload []byte, docLabel string) error {
	f, err := b.createTemp(b.config.TempDir, "print-bridge-*.bin")
	if err != nil {
		return printer.NewError(printer.KindOpen, "create spool file", printerName, "", err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			b.logger.Warn("Failed to remove spool file", zap.String("path", path), zap.Error(err))
		}
	}()

	if _, err := f.Write(payload); err != nil {
		f.Close()
		return printer.NewError(printer.KindWrite, "write spool file", printerName, "", err)
	}
	if err := f.Close(); err != nil {
		return printer.NewError(printer.KindWrite, "close spool file", printerName, "", err)
	}

	args := []string{"-d", printerName, "-o", "raw"}
	if docLabel != "" {
		args = append(args, "-t", docLabel)
	}
	args = append(args, path)

	stdout, stderr, exitCode, err := b.runner.Run(ctx, b.config.PrintCommand, args...)
	if err != nil {
		return printer.NewError(printer.KindShellInvocation, b.config.PrintCommand, printerName, "", err)
	}

	diagnostic := strings.TrimSpace(string(stderr))
	if exitCode != 0 {
		return printer.NewError(printer.KindWrite, b.config.PrintCommand, printerName,
			fmt.Sprintf("exit status %d: %s", exitCode, diagnostic), nil)
	}
	if diagnostic != "" {
		b.logger.Warn("Print command reported diagnostics on success",
			zap.String("printer", printerName),
			zap.String("stderr", diagnostic),
		)
	}

	b.logger.Debug("Print job accepted",
		zap.String("printer", printerName),
		zap.Int("bytes", len(payload)),
		zap.String("response", strings.TrimSpace(string(stdout))),
	)
	return nil
}

// SubmitText sends text unchanged; CUPS raw queues take the bytes as given
func (b *ShellBackend) SubmitText(ctx context.Context, printerName string, text string, docLabel string) error {
	return b.SubmitRaw(ctx, printerName, []byte(text), docLabel)
}
