// internal/updater/fakes_test.go
package updater

import (
	"context"
	"errors"
	"iter"
	"sync"
	"time"
)

// fakeClock fires every After immediately and cancels the run after limit sleeps
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	limit  int
	cancel context.CancelFunc
	never  bool
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sleeps = append(c.sleeps, d)
	ch := make(chan time.Time, 1)
	if c.never {
		return ch
	}
	c.now = c.now.Add(d)
	if c.limit > 0 && len(c.sleeps) >= c.limit && c.cancel != nil {
		c.cancel()
	}
	ch <- c.now
	return ch
}

func (c *fakeClock) sleepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sleeps)
}

type fakeSource struct {
	mu        sync.Mutex
	checks    int
	downloads int
	check     func(n int) (*Release, error)
	download  func(release *Release) (Download, error)
}

func (s *fakeSource) Check(ctx context.Context, currentVersion string) (*Release, error) {
	s.mu.Lock()
	s.checks++
	n := s.checks
	s.mu.Unlock()
	return s.check(n)
}

func (s *fakeSource) Download(ctx context.Context, release *Release) (Download, error) {
	s.mu.Lock()
	s.downloads++
	s.mu.Unlock()
	if s.download != nil {
		return s.download(release)
	}
	return &fakeDownload{chunks: []int64{50, 100}, total: 100, path: "/tmp/artifact"}, nil
}

type fakeDownload struct {
	chunks   []int64
	total    int64
	path     string
	err      error
	consumed bool
	closed   bool
}

func (d *fakeDownload) Progress() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		defer func() { d.consumed = true }()
		for _, c := range d.chunks {
			if !yield(c, d.total) {
				return
			}
		}
	}
}

func (d *fakeDownload) Err() error {
	if !d.consumed {
		return errors.New("not consumed")
	}
	return d.err
}

func (d *fakeDownload) Path() string { return d.path }

func (d *fakeDownload) Close() error {
	d.closed = true
	return nil
}

type fakeInstaller struct {
	mu       sync.Mutex
	installs []string
	err      error
}

func (i *fakeInstaller) Install(ctx context.Context, release *Release, path string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil {
		return i.err
	}
	i.installs = append(i.installs, release.Version+"@"+path)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	versions []string
}

func (n *fakeNotifier) NotifyUpdateReady(version string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.versions = append(n.versions, version)
}

func (n *fakeNotifier) received() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.versions...)
}
