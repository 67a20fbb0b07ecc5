// internal/backend/fakes_test.go
package backend

import (
	"context"
	"errors"
	"sync"
)

type runCall struct {
	name string
	args []string
}

// fakeRunner returns canned output and records every invocation
type fakeRunner struct {
	mu       sync.Mutex
	calls    []runCall
	stdout   string
	stderr   string
	exitCode int
	err      error
	onRun    func(name string, args []string)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, runCall{name: name, args: append([]string(nil), args...)})
	f.mu.Unlock()

	if f.onRun != nil {
		f.onRun(name, args)
	}
	if f.err != nil {
		return nil, nil, -1, f.err
	}
	return []byte(f.stdout), []byte(f.stderr), f.exitCode, nil
}

var errInjected = errors.New("injected failure")

// fakeSpooler tracks handle, document and page balance so tests can assert
// that every acquired resource is released
type fakeSpooler struct {
	failOpen      bool
	failStartDoc  bool
	failStartPage bool
	failWrite     bool
	shortBy       uint32

	opened, closed     int
	docsStarted, ended int
	pagesStarted       int
	pagesEnded         int
	datatype           string
	docName            string
	written            []byte
}

func (f *fakeSpooler) OpenPrinter(name string) (SpoolHandle, error) {
	if f.failOpen {
		return 0, errInjected
	}
	f.opened++
	return SpoolHandle(42), nil
}

func (f *fakeSpooler) ClosePrinter(h SpoolHandle) error {
	f.closed++
	return nil
}

func (f *fakeSpooler) StartDocPrinter(h SpoolHandle, docName, datatype string) (uint32, error) {
	if f.failStartDoc {
		return 0, errInjected
	}
	f.docsStarted++
	f.docName = docName
	f.datatype = datatype
	return 7, nil
}

func (f *fakeSpooler) EndDocPrinter(h SpoolHandle) error {
	f.ended++
	return nil
}

func (f *fakeSpooler) StartPagePrinter(h SpoolHandle) error {
	if f.failStartPage {
		return errInjected
	}
	f.pagesStarted++
	return nil
}

func (f *fakeSpooler) EndPagePrinter(h SpoolHandle) error {
	f.pagesEnded++
	return nil
}

func (f *fakeSpooler) WritePrinter(h SpoolHandle, data []byte) (uint32, error) {
	if f.failWrite {
		return 0, errInjected
	}
	n := uint32(len(data)) - f.shortBy
	f.written = append(f.written, data[:n]...)
	return n, nil
}

func (f *fakeSpooler) balanced() bool {
	return f.opened == f.closed && f.docsStarted == f.ended && f.pagesStarted == f.pagesEnded
}
