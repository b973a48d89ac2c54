// Package backup writes rotated JSON exports of the session and restores them.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
)

const exportVersion = 1

// Export is the on-disk envelope around a session snapshot
type Export struct {
	Version    int                `json:"version"`
	App        string             `json:"app"`
	ExportedAt string             `json:"exportedAt"`
	Session    models.SessionData `json:"session"`
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Session is the part of the session store a restore needs.
type Session interface {
	Snapshot() models.SessionData
	Replace(ctx context.Context, data models.SessionData) (models.SessionData, error)
}

// Manager handles backup operations
type Manager struct {
	backupDir string
	now       func() time.Time
}

// NewManager keeps backups in the backups/ directory under configDir
func NewManager(configDir string) *Manager {
	return &Manager{
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// WriteExport encodes data as an indented export document.
func WriteExport(w io.Writer, data models.SessionData, exportedAt time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{
		Version:    exportVersion,
		App:        constants.AppName,
		ExportedAt: exportedAt.UTC().Format(constants.TimestampFormat),
		Session:    data,
	})
}

// ReadExport decodes and sanity-checks an export document.
func ReadExport(r io.Reader) (Export, error) {
	var exp Export
	if err := json.NewDecoder(r).Decode(&exp); err != nil {
		return Export{}, fmt.Errorf("failed to parse export: %w", err)
	}
	if exp.App != constants.AppName {
		return Export{}, fmt.Errorf("not a %s export", constants.AppName)
	}
	if exp.Version < 1 || exp.Version > exportVersion {
		return Export{}, fmt.Errorf("unsupported export version %d", exp.Version)
	}
	return exp, nil
}

// CreateBackup writes data to a new timestamped file and rotates old ones
func (m *Manager) CreateBackup(data models.SessionData) (string, error) {
	return m.createBackup(data, false)
}

// skipRotation keeps the pre-restore safety copy from evicting the file being restored
func (m *Manager) createBackup(data models.SessionData, skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	tmp := backupPath + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	if err := WriteExport(f, data, m.now()); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	f.Close()
	if err := os.Rename(tmp, backupPath); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath picks a minute-precision name, falling back to seconds and
// then a counter when names collide.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	path := m.pathFor(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}

	timestamp := now.Format("20060102-150405")
	path = m.pathFor(timestamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.pathFor(fmt.Sprintf("%s-%d", timestamp, counter))
	}
	return path, nil
}

func (m *Manager) pathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		timestamp, ok := parseBackupName(name)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseBackupName extracts the timestamp from YYYYMMDD-HHMM[SS][-N].
func parseBackupName(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err == nil {
			stamp = parts[0] + "-" + parts[1]
		}
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.Parse(layout, stamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// VerifyBackup checks that path holds a readable export with valid records
func (m *Manager) VerifyBackup(path string) (Export, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Export{}, fmt.Errorf("backup file does not exist: %s", path)
		}
		return Export{}, err
	}
	defer f.Close()

	return ReadExport(f)
}

// RestoreBackup replaces the live session with the backup at path. The
// current session is saved first unless it is empty.
func (m *Manager) RestoreBackup(ctx context.Context, path string, target Session) (string, error) {
	exp, err := m.VerifyBackup(path)
	if err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if current := target.Snapshot(); !current.IsEmpty() {
		safety, err = m.createBackup(current, true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current session before restore: %w", err)
		}
		logger.Info("Saved current session before restore", "path", safety)
	}

	if _, err := target.Replace(ctx, exp.Session); err != nil {
		return safety, fmt.Errorf("failed to restore session: %w", err)
	}
	return safety, nil
}
