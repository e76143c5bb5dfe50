// Package backup provides file backup and restoration capabilities.
// It implements safe file operations with automatic backup creation
// and restoration support for error recovery scenarios.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"urimap/internal/errors"
)

// Manager handles file backup and restoration operations.
// It provides configurable backup behavior and ensures data safety
// during file rewrite operations through automatic backup creation.
type Manager struct {
	enabled bool
}

// NewManager creates a Manager with the specified behavior. When disabled,
// BackupFile is a no-op so callers need not branch on the configuration.
func NewManager(enabled bool) *Manager {
	return &Manager{
		enabled: enabled,
	}
}

// BackupFile creates a timestamped backup copy of the specified file.
// The backup lives next to the original with a unique name to prevent
// conflicts, enabling safe file modifications with recovery options.
func (m *Manager) BackupFile(filePath string) (string, error) {
	if !m.enabled {
		return "", nil
	}

	backupPath := generateBackupPath(filePath)

	srcFile, err := os.Open(filePath)
	if err != nil {
		return "", errors.NewBackupError(filePath, "failed to open source file", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(backupPath)
	if err != nil {
		return "", errors.NewBackupError(backupPath, "failed to create backup file", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = os.Remove(backupPath)
		return "", errors.NewBackupError(backupPath, "failed to copy file content", err)
	}

	srcInfo, err := os.Stat(filePath)
	if err != nil {
		return backupPath, nil
	}
	if err := os.Chmod(backupPath, srcInfo.Mode()); err != nil {
		return backupPath, nil
	}

	return backupPath, nil
}

// RestoreFile overwrites the original file with contents from the backup.
// The backup's existence is validated first, preventing data loss from
// failed restore operations.
func (m *Manager) RestoreFile(originalPath, backupPath string) error {
	if backupPath == "" {
		return nil
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.NewBackupError(backupPath, "backup file not found", err)
	}

	srcFile, err := os.Open(backupPath)
	if err != nil {
		return errors.NewBackupError(backupPath, "failed to open backup file", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(originalPath)
	if err != nil {
		return errors.NewBackupError(originalPath, "failed to create original file", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errors.NewBackupError(originalPath, "failed to restore file content", err)
	}

	backupInfo, err := os.Stat(backupPath)
	if err != nil {
		return nil
	}
	if err := os.Chmod(originalPath, backupInfo.Mode()); err != nil {
		return nil
	}

	return nil
}

// CleanupBackup removes the backup file after successful operations.
// Cleanup errors are reported but should not mask the primary operation
// result.
func (m *Manager) CleanupBackup(backupPath string) error {
	if backupPath == "" {
		return nil
	}

	if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
		return errors.NewBackupError(backupPath, "failed to remove backup file", err)
	}
	return nil
}

func generateBackupPath(originalPath string) string {
	dir := filepath.Dir(originalPath)
	base := filepath.Base(originalPath)
	timestamp := time.Now().Format("20060102-150405.000000000")
	return filepath.Join(dir, fmt.Sprintf("%s.%s.bak", base, timestamp))
}
