package infra

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const (
	AppName = "sadaqah"

	localWorkspace = "_workspace"
	lockFileName   = "instance.lock"

	// a lock without a readable pid younger than this is still being written
	lockGrace = 10 * time.Second
)

// GetWorkspaceDir returns the root directory for all runtime data.
// A local "_workspace" directory wins when present (portable/dev mode);
// otherwise the OS data directory is used.
func GetWorkspaceDir() string {
	if _, err := os.Stat(localWorkspace); err == nil {
		return localWorkspace
	}

	var baseDir string
	switch runtime.GOOS {
	case "windows":
		// %AppData%\sadaqah
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			baseDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, _ := os.UserHomeDir()
		baseDir = filepath.Join(home, "Library", "Application Support")
	case "linux":
		// XDG_DATA_HOME, else ~/.local/share
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			home, _ := os.UserHomeDir()
			baseDir = filepath.Join(home, ".local", "share")
		}
	default:
		return localWorkspace
	}

	return filepath.Join(baseDir, AppName)
}

// EnsureDir creates the directory if it doesn't exist (0755).
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// DataPath returns the database file for the configured driver.
// The memory driver has no file and yields "".
func DataPath(workDir string, cfg *Config) string {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	switch cfg.Storage.Driver {
	case DriverSQLite:
		return filepath.Join(workDir, "data", AppName+".db")
	case DriverBolt:
		return filepath.Join(workDir, "data", AppName+".bolt")
	}
	return ""
}

// BackupDir is where preset backups are written.
func BackupDir(workDir string) string {
	return filepath.Join(workDir, "backups")
}

// CreateLockFile creates the instance lock in workDir so that only one process
// touches the local database at a time. A lock left by a process that is no
// longer running is reclaimed. The returned func removes the lock.
func CreateLockFile(workDir string) (func(), error) {
	lockPath := filepath.Join(workDir, lockFileName)

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if os.IsExist(err) && lockIsStale(lockPath) {
		slog.Warn("Reclaiming stale lock file", slog.String("path", lockPath))
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		f, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	}
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("another instance is already running (lock file exists: %s)", lockPath)
		}
		return nil, err
	}

	fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()

	return func() { os.Remove(lockPath) }, nil
}

// lockIsStale reports whether the process recorded in the lock is gone.
func lockIsStale(lockPath string) bool {
	raw, err := os.ReadFile(lockPath)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		info, err := os.Stat(lockPath)
		return err == nil && time.Since(info.ModTime()) > lockGrace
	}
	return !processAlive(pid)
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess fails for missing processes on windows
	if runtime.GOOS == "windows" {
		return true
	}
	err = p.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// ResolveConfigPath finds config.yaml.
// Priority: configs/ in the current dir, then the OS config dir.
func ResolveConfigPath() string {
	defaultPath := filepath.Join("configs", "config.yaml")

	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath
	}

	if configRoot, err := os.UserConfigDir(); err == nil {
		osPath := filepath.Join(configRoot, AppName, "config.yaml")
		if _, err := os.Stat(osPath); err == nil {
			return osPath
		}
	}

	// LoadConfig treats a missing file as "defaults only"
	return defaultPath
}
