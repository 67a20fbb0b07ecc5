// internal/updater/poller.go
package updater

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"print-bridge/internal/utils"
)

// progressLogStep is how far a download advances between progress log lines
const progressLogStep = 0.10

// Poller periodically checks for, downloads and installs updates
type Poller struct {
	source    Source
	installer Installer
	notifier  Notifier
	scheduler *Scheduler
	interval  time.Duration
	logger    *utils.ServiceLogger

	mu     sync.RWMutex
	status Status
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithClock replaces the wall clock used between cycles
func WithClock(clock Clock) PollerOption {
	return func(p *Poller) {
		p.scheduler = NewScheduler(clock)
	}
}

// NewPoller creates an update poller
func NewPoller(
	source Source,
	installer Installer,
	notifier Notifier,
	currentVersion string,
	interval time.Duration,
	logger *zap.Logger,
	opts ...PollerOption,
) *Poller {
	p := &Poller{
		source:    source,
		installer: installer,
		notifier:  notifier,
		scheduler: NewScheduler(nil),
		interval:  interval,
		logger:    utils.NewServiceLogger(logger, "update-poller"),
		status: Status{
			Phase:          PhaseIdle,
			CurrentVersion: currentVersion,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loops until ctx is cancelled. Cycle failures are logged and never end the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Update poller started", zap.Duration("interval", p.interval))
	err := p.scheduler.Every(ctx, p.interval, p.cycle)
	p.setPhase(PhaseIdle)
	p.logger.Info("Update poller stopped", zap.Error(err))
	return err
}

// State returns the current phase
func (p *Poller) State() Phase {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status.Phase
}

// Status returns a snapshot of the poller
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// cycle runs one check/download/install pass and always ends Idle
func (p *Poller) cycle(ctx context.Context) {
	opLogger := utils.NewOperationLogger(p.logger.Logger, "update_check", uuid.New().String())
	opLogger.Start()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("update cycle panic: %v", r)
			opLogger.Error(err, zap.ByteString("stack", debug.Stack()))
			p.recordError(err)
		}
		p.finishCycle()
	}()

	version, err := p.runCycle(ctx, opLogger)
	if err != nil {
		opLogger.Error(err)
		p.recordError(err)
		return
	}
	p.recordError(nil)
	if version == "" {
		opLogger.Success(zap.Bool("update_available", false))
		return
	}

	opLogger.Success(zap.Bool("update_available", true), zap.String("version", version))
	p.notifier.NotifyUpdateReady(version)
}

// runCycle returns the installed version, or "" when already up to date
func (p *Poller) runCycle(ctx context.Context, opLogger *utils.OperationLogger) (string, error) {
	p.setPhase(PhaseChecking)
	release, err := p.source.Check(ctx, p.currentVersion())
	if err != nil {
		return "", fmt.Errorf("update check failed: %w", err)
	}
	if release == nil {
		return "", nil
	}

	p.setPhase(PhaseDownloading)
	dl, err := p.source.Download(ctx, release)
	if err != nil {
		return "", fmt.Errorf("update download failed: %w", err)
	}
	defer func() {
		if err := dl.Close(); err != nil {
			p.logger.Warn("Failed to clean up download", zap.Error(err))
		}
	}()

	nextLog := 0.0
	var received int64
	for done, total := range dl.Progress() {
		received = done
		if total <= 0 {
			continue
		}
		if fraction := float64(done) / float64(total); fraction >= nextLog {
			opLogger.Progress("Downloading update", fraction, zap.Int64("bytes", done), zap.Int64("total", total))
			nextLog = fraction + progressLogStep
		}
	}
	if err := dl.Err(); err != nil {
		return "", fmt.Errorf("update download failed: %w", err)
	}
	opLogger.Progress("Download complete", 1, zap.Int64("bytes", received))

	p.setPhase(PhaseInstalling)
	if err := p.installer.Install(ctx, release, dl.Path()); err != nil {
		return "", fmt.Errorf("update install failed: %w", err)
	}

	p.mu.Lock()
	p.status.Phase = PhaseReady
	p.status.ReadyVersion = release.Version
	p.mu.Unlock()

	return release.Version, nil
}

// currentVersion is the running version, or the staged one once an update
// is installed so the same release is not fetched again before restart
func (p *Poller) currentVersion() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.status.ReadyVersion != "" {
		return p.status.ReadyVersion
	}
	return p.status.CurrentVersion
}

func (p *Poller) setPhase(phase Phase) {
	p.mu.Lock()
	p.status.Phase = phase
	p.mu.Unlock()
}

func (p *Poller) recordError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.status.LastError = err.Error()
	} else {
		p.status.LastError = ""
	}
}

func (p *Poller) finishCycle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Phase = PhaseIdle
	p.status.LastCheck = p.scheduler.clock.Now()
	p.status.Cycles++
}
