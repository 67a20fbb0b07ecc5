// internal/updater/http_source.go
package updater

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

const (
	defaultCheckRetries = 3
	downloadChunkSize   = 32 * 1024
)

// HTTPSource reads a JSON release manifest and fetches artifacts over HTTP
type HTTPSource struct {
	endpoint   string
	stagingDir string
	client     *http.Client
	logger     *zap.Logger

	// CheckRetries bounds manifest fetch attempts
	CheckRetries uint
	// RetryInterval is the first backoff delay between manifest attempts
	RetryInterval time.Duration
}

// NewHTTPSource creates an HTTP release source
func NewHTTPSource(endpoint, stagingDir string, client *http.Client, logger *zap.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		endpoint:      endpoint,
		stagingDir:    stagingDir,
		client:        client,
		logger:        logger.With(zap.String("component", "update-source")),
		CheckRetries:  defaultCheckRetries,
		RetryInterval: time.Second,
	}
}

// Check fetches the manifest and compares its version with currentVersion
func (s *HTTPSource) Check(ctx context.Context, currentVersion string) (*Release, error) {
	current := canonicalVersion(currentVersion)
	if !semver.IsValid(current) {
		return nil, fmt.Errorf("invalid current version %q", currentVersion)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.RetryInterval

	release, err := backoff.Retry(ctx, func() (*Release, error) {
		return s.fetchManifest(ctx)
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(s.CheckRetries))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch update manifest: %w", err)
	}

	remote := canonicalVersion(release.Version)
	if !semver.IsValid(remote) {
		return nil, fmt.Errorf("manifest carries invalid version %q", release.Version)
	}
	if semver.Compare(remote, current) <= 0 {
		return nil, nil
	}
	if release.URL == "" {
		return nil, fmt.Errorf("manifest for %s has no artifact url", release.Version)
	}

	return release, nil
}

func (s *HTTPSource) fetchManifest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("manifest request returned %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("manifest request returned %s", resp.Status))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode manifest: %w", err))
	}
	return &release, nil
}

// Download opens the artifact stream and a staging file; bytes move as
// Progress is ranged over
func (s *HTTPSource) Download(ctx context.Context, release *Release) (Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, release.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid artifact url: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("artifact request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("artifact request returned %s", resp.Status)
	}

	f, err := os.CreateTemp(s.stagingDir, "print-bridge-update-*")
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}

	return &httpDownload{
		body:     resp.Body,
		total:    resp.ContentLength,
		file:     f,
		expected: strings.ToLower(release.SHA256),
	}, nil
}

// httpDownload streams a response body into a staging file
type httpDownload struct {
	body     io.ReadCloser
	total    int64
	file     *os.File
	expected string
	err      error
	done     bool
}

func (d *httpDownload) Progress() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		if d.done {
			return
		}
		defer d.finish()

		hash := sha256.New()
		w := io.MultiWriter(d.file, hash)
		buf := make([]byte, downloadChunkSize)
		var received int64

		for {
			n, rerr := d.body.Read(buf)
			if n > 0 {
				if _, err := w.Write(buf[:n]); err != nil {
					d.err = fmt.Errorf("failed to write staging file: %w", err)
					return
				}
				received += int64(n)
				if !yield(received, d.total) {
					d.err = errors.New("download abandoned")
					return
				}
			}
			if rerr == io.EOF {
				break
			}
			if rerr != nil {
				d.err = fmt.Errorf("artifact read failed: %w", rerr)
				return
			}
		}

		if d.total >= 0 && received != d.total {
			d.err = fmt.Errorf("artifact truncated: got %d of %d bytes", received, d.total)
			return
		}
		if d.expected != "" {
			if sum := hex.EncodeToString(hash.Sum(nil)); sum != d.expected {
				d.err = fmt.Errorf("artifact checksum mismatch: got %s", sum)
			}
		}
	}
}

func (d *httpDownload) finish() {
	d.done = true
	d.body.Close()
	if err := d.file.Close(); err != nil && d.err == nil {
		d.err = fmt.Errorf("failed to close staging file: %w", err)
	}
}

func (d *httpDownload) Err() error {
	if !d.done {
		return errors.New("download not consumed")
	}
	return d.err
}

func (d *httpDownload) Path() string {
	return d.file.Name()
}

// Close releases the response and removes the staging file if it is still there
func (d *httpDownload) Close() error {
	if !d.done {
		d.done = true
		d.body.Close()
		d.file.Close()
	}
	if err := os.Remove(d.file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// canonicalVersion prefixes a bare version with "v" as semver expects
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
