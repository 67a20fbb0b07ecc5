// internal/updater/http_source_test.go
package updater

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSource(t *testing.T, url string) *HTTPSource {
	t.Helper()
	src := NewHTTPSource(url, t.TempDir(), nil, zap.NewNop())
	src.RetryInterval = time.Millisecond
	return src
}

func manifestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSourceCheck(t *testing.T) {
	srv := manifestServer(t, `{"version":"1.2.0","url":"https://updates.example/pb.bin","notes":"fixes","pub_date":"2026-01-02T03:04:05Z"}`)
	src := newTestSource(t, srv.URL)

	release, err := src.Check(context.Background(), "1.1.9")
	require.NoError(t, err)
	require.NotNil(t, release)
	assert.Equal(t, "1.2.0", release.Version)
	assert.Equal(t, "fixes", release.Notes)

	release, err = src.Check(context.Background(), "v1.2.0")
	require.NoError(t, err)
	assert.Nil(t, release)

	release, err = src.Check(context.Background(), "1.10.0")
	require.NoError(t, err)
	assert.Nil(t, release)
}

func TestHTTPSourceCheck_InvalidVersions(t *testing.T) {
	srv := manifestServer(t, `{"version":"latest","url":"https://updates.example/pb.bin"}`)
	src := newTestSource(t, srv.URL)

	_, err := src.Check(context.Background(), "0.1.0")
	assert.ErrorContains(t, err, "invalid version")

	_, err = src.Check(context.Background(), "not-a-version")
	assert.ErrorContains(t, err, "invalid current version")
}

func TestHTTPSourceCheck_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"version":"0.2.0","url":"https://updates.example/pb.bin"}`)
	}))
	defer srv.Close()
	src := newTestSource(t, srv.URL)

	release, err := src.Check(context.Background(), "0.1.0")

	require.NoError(t, err)
	require.NotNil(t, release)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSourceCheck_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	src := newTestSource(t, srv.URL)

	_, err := src.Check(context.Background(), "0.1.0")

	assert.ErrorContains(t, err, "404")
	assert.Equal(t, int32(1), calls.Load())
}

func artifactServer(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSourceDownload(t *testing.T) {
	payload := make([]byte, 100*1024)
	for i := range payload {
		payload[i] = byte(i)
	}
	sum := sha256.Sum256(payload)
	srv := artifactServer(t, payload)
	src := newTestSource(t, srv.URL)

	dl, err := src.Download(context.Background(), &Release{Version: "0.2.0", URL: srv.URL + "/pb.bin", SHA256: hex.EncodeToString(sum[:])})
	require.NoError(t, err)
	defer dl.Close()

	var last, total int64
	steps := 0
	for done, n := range dl.Progress() {
		assert.Greater(t, done, last)
		last, total = done, n
		steps++
	}

	require.NoError(t, dl.Err())
	assert.Equal(t, int64(len(payload)), last)
	assert.Equal(t, int64(len(payload)), total)
	assert.Greater(t, steps, 1)

	data, err := os.ReadFile(dl.Path())
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestHTTPSourceDownload_ChecksumMismatch(t *testing.T) {
	srv := artifactServer(t, []byte("tampered"))
	src := newTestSource(t, srv.URL)

	dl, err := src.Download(context.Background(), &Release{Version: "0.2.0", URL: srv.URL, SHA256: "00ff"})
	require.NoError(t, err)

	for range dl.Progress() {
	}

	assert.ErrorContains(t, dl.Err(), "checksum mismatch")
	path := dl.Path()
	require.NoError(t, dl.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestHTTPSourceDownload_Truncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.Write([]byte("short"))
	}))
	t.Cleanup(srv.Close)
	src := newTestSource(t, srv.URL)

	dl, err := src.Download(context.Background(), &Release{Version: "0.2.0", URL: srv.URL})
	require.NoError(t, err)
	defer dl.Close()

	var last int64
	for done, total := range dl.Progress() {
		assert.Equal(t, int64(100), total)
		last = done
	}

	assert.Less(t, last, int64(100))
	assert.ErrorIs(t, dl.Err(), io.ErrUnexpectedEOF)
	assert.ErrorContains(t, dl.Err(), "artifact read failed")
}

func TestHTTPSourceDownload_UnknownLength(t *testing.T) {
	first := make([]byte, 40*1024)
	second := []byte("tail")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flushing before the body is complete forces chunked encoding
		w.Write(first)
		w.(http.Flusher).Flush()
		w.Write(second)
	}))
	t.Cleanup(srv.Close)
	src := newTestSource(t, srv.URL)

	dl, err := src.Download(context.Background(), &Release{Version: "0.2.0", URL: srv.URL})
	require.NoError(t, err)
	defer dl.Close()

	var last int64
	for done, total := range dl.Progress() {
		assert.Equal(t, int64(-1), total)
		last = done
	}

	require.NoError(t, dl.Err())
	assert.Equal(t, int64(len(first)+len(second)), last)
	data, err := os.ReadFile(dl.Path())
	require.NoError(t, err)
	assert.Len(t, data, len(first)+len(second))
}

func TestHTTPSourceDownload_ErrBeforeConsumed(t *testing.T) {
	srv := artifactServer(t, []byte("abc"))
	src := newTestSource(t, srv.URL)

	dl, err := src.Download(context.Background(), &Release{Version: "0.2.0", URL: srv.URL})
	require.NoError(t, err)
	defer dl.Close()

	assert.Error(t, dl.Err())
}

func TestHTTPSourceDownload_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	src := newTestSource(t, srv.URL)

	_, err := src.Download(context.Background(), &Release{Version: "0.2.0", URL: srv.URL})

	assert.ErrorContains(t, err, "404")
}

func TestFileInstaller(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "staged")
	require.NoError(t, os.WriteFile(src, []byte("binary"), 0o600))
	installer := NewFileInstaller(filepath.Join(dir, "updates"), "print-bridge", zap.NewNop())
	release := &Release{Version: "0.2.0", URL: "https://updates.example/dl/print-bridge.exe?sig=1"}

	require.NoError(t, installer.Install(context.Background(), release, src))

	target := filepath.Join(dir, "updates", "print-bridge-v0.2.0.exe")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(target + ".partial")
	assert.True(t, os.IsNotExist(err))
}

func TestFileInstaller_MissingSource(t *testing.T) {
	installer := NewFileInstaller(t.TempDir(), "print-bridge", zap.NewNop())

	err := installer.Install(context.Background(), &Release{Version: "0.2.0"}, "/nonexistent/artifact")

	assert.Error(t, err)
}
