// internal/updater/installer.go
package updater

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// FileInstaller moves verified artifacts into the install directory
type FileInstaller struct {
	installDir string
	appName    string
	logger     *zap.Logger
}

// NewFileInstaller creates a file installer
func NewFileInstaller(installDir, appName string, logger *zap.Logger) *FileInstaller {
	return &FileInstaller{
		installDir: installDir,
		appName:    appName,
		logger:     logger.With(zap.String("component", "update-installer")),
	}
}

// Install renames the artifact to <app>-<version><ext> inside the install dir
func (i *FileInstaller) Install(ctx context.Context, release *Release, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(i.installDir, 0o755); err != nil {
		return fmt.Errorf("failed to create install dir: %w", err)
	}

	target := filepath.Join(i.installDir, i.TargetName(release))

	// Stage next to the target so the final rename stays on one filesystem
	staged := target + ".partial"
	if err := moveFile(src, staged); err != nil {
		return fmt.Errorf("failed to stage artifact: %w", err)
	}
	if err := os.Chmod(staged, 0o755); err != nil {
		os.Remove(staged)
		return fmt.Errorf("failed to set artifact mode: %w", err)
	}
	if err := os.Rename(staged, target); err != nil {
		os.Remove(staged)
		return fmt.Errorf("failed to install artifact: %w", err)
	}

	i.logger.Info("Update installed",
		zap.String("version", release.Version),
		zap.String("path", target),
	)
	return nil
}

// TargetName returns the installed file name for release
func (i *FileInstaller) TargetName(release *Release) string {
	ext := ""
	if u, err := url.Parse(release.URL); err == nil {
		ext = path.Ext(u.Path)
	}
	return fmt.Sprintf("%s-%s%s", i.appName, canonicalVersion(release.Version), ext)
}

// moveFile renames src to dst, copying when they sit on different devices
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return err
	}
	return os.Remove(src)
}
