// internal/service/printer_discovery_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/internal/utils"
	"print-bridge/pkg/printer"
)

// SyntheticPrinters stand in for real hardware during UI development
var SyntheticPrinters = []string{
	"MOCK Thermal Printer 80mm",
	"MOCK Thermal Printer 58mm",
	"MOCK Kitchen Printer",
	"MOCK Label Printer",
}

// PrinterDiscoveryService lists installed printers through the selected backend
type PrinterDiscoveryService struct {
	backend        printer.Backend
	allowSynthetic bool
	logger         *utils.ServiceLogger
}

// NewPrinterDiscoveryService creates a new discovery service
func NewPrinterDiscoveryService(backend printer.Backend, cfg *config.PrintingConfig, logger *zap.Logger) *PrinterDiscoveryService {
	return &PrinterDiscoveryService{
		backend:        backend,
		allowSynthetic: cfg.AllowSyntheticPrinters,
		logger:         utils.NewServiceLogger(logger, "discovery-service"),
	}
}

// ListPrinters enumerates printers. Names are never cached; every call asks the OS.
func (ds *PrinterDiscoveryService) ListPrinters(ctx context.Context) ([]string, error) {
	start := time.Now()

	names, err := ds.backend.Enumerate(ctx)
	if err != nil {
		ds.logger.Error("Printer enumeration failed",
			zap.String("backend", ds.backend.Name()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to list printers: %w", err)
	}

	if len(names) == 0 && ds.allowSynthetic {
		ds.logger.Warn("No printers found, returning synthetic printers",
			zap.Int("count", len(SyntheticPrinters)),
		)
		return append([]string(nil), SyntheticPrinters...), nil
	}

	ds.logger.Info("Printer enumeration completed",
		zap.String("backend", ds.backend.Name()),
		zap.Int("printers_found", len(names)),
		zap.Duration("duration", time.Since(start)),
	)
	return names, nil
}

// BackendName returns the name of the active backend
func (ds *PrinterDiscoveryService) BackendName() string {
	return ds.backend.Name()
}
