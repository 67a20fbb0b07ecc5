// internal/service/print_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/internal/escpos"
	"print-bridge/internal/utils"
	"print-bridge/pkg/printer"
)

// ErrPrinterRequired is returned when a submission names no printer
var ErrPrinterRequired = errors.New("printer name is required")

// selfTestWidth is the character width of a 58mm roll at font A
const selfTestWidth = 32

// PrintService submits raw jobs to named printers
type PrintService struct {
	backend printer.Backend
	config  *config.PrintingConfig
	logger  *utils.ServiceLogger
}

// NewPrintService creates a new print service
func NewPrintService(backend printer.Backend, cfg *config.PrintingConfig, logger *zap.Logger) *PrintService {
	return &PrintService{
		backend: backend,
		config:  cfg,
		logger:  utils.NewServiceLogger(logger, "print-service"),
	}
}

// SubmitRaw sends an opaque payload, usually ESC/POS, to printerName
func (ps *PrintService) SubmitRaw(ctx context.Context, printerName string, payload []byte) (string, error) {
	err := ps.run(ctx, "print", printerName, len(payload), func(ctx context.Context) error {
		return ps.backend.SubmitRaw(ctx, printerName, payload, ps.config.DocumentLabel)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Receipt printed to %s", printerName), nil
}

// RunSelfTest prints the canned test receipt
func (ps *PrintService) RunSelfTest(ctx context.Context, printerName string) (string, error) {
	text := ps.SelfTestPayload()
	err := ps.run(ctx, "self_test", printerName, len(text), func(ctx context.Context) error {
		return ps.backend.SubmitText(ctx, printerName, text, ps.config.SelfTestLabel)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Test print sent to %s", printerName), nil
}

// OpenCashDrawer pulses the drawer kick connector wired to printerName
func (ps *PrintService) OpenCashDrawer(ctx context.Context, printerName string, pin escpos.DrawerPin) (string, error) {
	payload, err := escpos.DrawerKick(pin)
	if err != nil {
		return "", err
	}
	err = ps.run(ctx, "cash_drawer", printerName, len(payload), func(ctx context.Context) error {
		return ps.backend.SubmitRaw(ctx, printerName, payload, ps.config.DocumentLabel)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Cash drawer opened via %s", printerName), nil
}

// SelfTestPayload returns the fixed test receipt text
func (ps *PrintService) SelfTestPayload() string {
	rule := strings.Repeat("=", selfTestWidth)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(center("PRINTER SELF TEST", selfTestWidth) + "\n")
	b.WriteString(center(ps.config.SelfTestLabel, selfTestWidth) + "\n")
	b.WriteString(strings.Repeat("-", selfTestWidth) + "\n")
	b.WriteString("TEST PRINT OK\n")
	b.WriteString(rule + "\n")
	b.WriteString("\n\n\n\n")
	return b.String()
}

// run executes one submission with a job id, timeout and operation log
func (ps *PrintService) run(ctx context.Context, op, printerName string, size int, submit func(context.Context) error) error {
	if strings.TrimSpace(printerName) == "" {
		return ErrPrinterRequired
	}

	jobID := uuid.New().String()
	opLogger := utils.NewOperationLogger(utils.LoggerFromContext(ctx, ps.logger.Logger), op, jobID)
	opLogger.Start(
		zap.String("printer", printerName),
		zap.String("backend", ps.backend.Name()),
		zap.Int("bytes", size),
	)

	if ps.config.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ps.config.OperationTimeout)
		defer cancel()
	}

	if err := submit(ctx); err != nil {
		opLogger.Error(err, zap.String("printer", printerName))
		return err
	}

	opLogger.Success(zap.String("printer", printerName), zap.Int("bytes", size))
	return nil
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}
