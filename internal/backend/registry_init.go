// internal/backend/registry_init.go
package backend

import (
	"go.uber.org/zap"

	"print-bridge/pkg/printer"
)

// cupsPlatforms are the OS families that ship the CUPS lpstat/lp utilities
var cupsPlatforms = []string{"linux", "darwin", "freebsd", "openbsd", "netbsd"}

// RegisterDefaultBackends registers the spooler and shell backends
func RegisterDefaultBackends(registry *Registry, logger *zap.Logger) {
	registry.Register("windows", newSpoolerFromDeps)

	for _, goos := range cupsPlatforms {
		registry.Register(goos, newShellFromDeps)
	}

	logger.Info("Printer backends registered",
		zap.Strings("platforms", registry.SupportedPlatforms()),
	)
}

func newSpoolerFromDeps(deps Dependencies) (printer.Backend, error) {
	api, err := NativeSpoolerAPI()
	if err != nil {
		return nil, err
	}
	runner := deps.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	return NewSpoolerBackend(deps.Printing.Spooler, api, runner, deps.Logger), nil
}

func newShellFromDeps(deps Dependencies) (printer.Backend, error) {
	runner := deps.Runner
	if runner == nil {
		// lpstat output is parsed by keyword, so pin the locale
		runner = &ExecRunner{Env: []string{"LC_ALL=C", "LANG=C"}}
	}
	return NewShellBackend(deps.Printing.Shell, runner, deps.Logger), nil
}
