// internal/backend/registry_test.go
package backend

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/pkg/printer"
)

func testDeps() Dependencies {
	return Dependencies{
		Printing: config.PrintingConfig{
			Shell: config.ShellConfig{StatusCommand: "lpstat", StatusArgs: []string{"-p"}, PrintCommand: "lp"},
		},
		Runner: &fakeRunner{},
		Logger: zap.NewNop(),
	}
}

func TestRegistry_DefaultPlatforms(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	RegisterDefaultBackends(r, zap.NewNop())

	assert.Equal(t, []string{"darwin", "freebsd", "linux", "netbsd", "openbsd", "windows"}, r.SupportedPlatforms())
	assert.True(t, r.IsSupported("linux"))
	assert.False(t, r.IsSupported("plan9"))
}

func TestRegistry_ShellForCUPSPlatforms(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	RegisterDefaultBackends(r, zap.NewNop())

	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		b, err := r.CreateBackend(goos, testDeps())
		require.NoError(t, err)
		assert.Equal(t, BackendShell, b.Name())
	}
}

func TestRegistry_UnknownPlatformIsUnsupported(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	RegisterDefaultBackends(r, zap.NewNop())

	b, err := r.CreateBackend("plan9", testDeps())
	require.NoError(t, err)
	assert.Equal(t, BackendUnsupported, b.Name())

	_, err = b.Enumerate(context.Background())
	assert.ErrorIs(t, err, printer.ErrPlatformUnsupported)
	assert.ErrorIs(t, b.SubmitRaw(context.Background(), "P", []byte("x"), "doc"), printer.ErrPlatformUnsupported)
	assert.ErrorIs(t, b.SubmitText(context.Background(), "P", "x", "doc"), printer.ErrPlatformUnsupported)
}

func TestRegistry_SpoolerOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native spooler is available")
	}
	r := NewRegistry(zap.NewNop())
	RegisterDefaultBackends(r, zap.NewNop())

	_, err := r.CreateBackend("windows", testDeps())
	assert.ErrorIs(t, err, printer.ErrPlatformUnsupported)
}

func TestRegistry_CustomFactory(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	r.Register("plan9", func(deps Dependencies) (printer.Backend, error) {
		return NewUnsupportedBackend("custom"), nil
	})

	b, err := r.CreateBackend("plan9", Dependencies{})
	require.NoError(t, err)
	assert.Equal(t, BackendUnsupported, b.Name())
}
