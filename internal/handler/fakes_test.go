// internal/handler/fakes_test.go
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"print-bridge/internal/updater"
	"print-bridge/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBackend struct {
	mu        sync.Mutex
	name      string
	names     []string
	enumErr   error
	submitErr error
	payloads  [][]byte
	labels    []string
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Enumerate(ctx context.Context) ([]string, error) {
	if f.enumErr != nil {
		return nil, f.enumErr
	}
	return append([]string{}, f.names...), nil
}

func (f *fakeBackend) SubmitRaw(ctx context.Context, printerName string, payload []byte, docLabel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, append([]byte(nil), payload...))
	f.labels = append(f.labels, docLabel)
	return f.submitErr
}

func (f *fakeBackend) SubmitText(ctx context.Context, printerName string, text string, docLabel string) error {
	return f.SubmitRaw(ctx, printerName, []byte(text), docLabel)
}

type fakeUpdates struct {
	status updater.Status
}

func (f *fakeUpdates) Status() updater.Status { return f.status }

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp utils.APIResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}
