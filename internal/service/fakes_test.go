// internal/service/fakes_test.go
package service

import (
	"context"
	"sync"

	"print-bridge/pkg/printer"
)

type submission struct {
	printer string
	payload []byte
	label   string
	text    bool
}

// fakeBackend simulates a spooler that accepts `accept` bytes of every job,
// or all of them when accept is negative
type fakeBackend struct {
	mu          sync.Mutex
	names       []string
	enumErr     error
	submitErr   error
	accept      int
	submissions []submission
	enumCalls   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{accept: -1}
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Enumerate(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enumCalls++
	if f.enumErr != nil {
		return nil, f.enumErr
	}
	return append([]string{}, f.names...), nil
}

func (f *fakeBackend) SubmitRaw(ctx context.Context, printerName string, payload []byte, docLabel string) error {
	return f.record(submission{printer: printerName, payload: append([]byte(nil), payload...), label: docLabel})
}

func (f *fakeBackend) SubmitText(ctx context.Context, printerName string, text string, docLabel string) error {
	return f.record(submission{printer: printerName, payload: []byte(text), label: docLabel, text: true})
}

func (f *fakeBackend) record(s submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, s)
	if f.submitErr != nil {
		return f.submitErr
	}
	if f.accept >= 0 && f.accept != len(s.payload) {
		return printer.PartialWrite(s.printer, f.accept, len(s.payload))
	}
	return nil
}
