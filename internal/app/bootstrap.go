package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"sadaqah_go/internal/api"
	"sadaqah_go/internal/cache"
	"sadaqah_go/internal/infra"
	"sadaqah_go/internal/preset"
	"sadaqah_go/internal/service"
	"sadaqah_go/internal/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	// WorkDir overrides the workspace directory. Empty means infra.GetWorkspaceDir().
	WorkDir string

	Config    *infra.Config
	Store     storage.Store
	Cache     *cache.Cache
	Presets   *preset.Store
	Client    *api.Client
	Service   *service.Facade
	Snapshots *storage.SnapshotManager

	unlock func()
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads the configuration and wires storage, cache, presets,
// the API client and the cached facade. verbose forces debug logging.
func (b *Bootstrap) Initialize(ctx context.Context, configPath string, verbose bool) error {
	// 1. Load Config
	if configPath == "" {
		configPath = infra.ResolveConfigPath()
	}
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	b.Config = cfg

	// 2. Setup Logger
	slog.SetDefault(infra.NewLogger(cfg))
	slog.Debug("Bootstrapping", slog.String("config", configPath), slog.String("driver", cfg.Storage.Driver))

	// 3. Workspace
	workDir := b.WorkDir
	if workDir == "" {
		workDir = infra.GetWorkspaceDir()
	}
	if err := infra.EnsureDir(filepath.Join(workDir, "data")); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	// 3.1 Singleton instance lock; the memory driver has nothing to protect
	if cfg.Storage.Driver != infra.DriverMemory {
		unlock, err := infra.CreateLockFile(workDir)
		if err != nil {
			return err
		}
		b.unlock = unlock
	}

	// 4. Local storage
	store, err := openStore(cfg, workDir)
	if err != nil {
		b.release()
		return err
	}
	b.Store = store
	b.Snapshots = storage.NewSnapshotManager(infra.BackupDir(workDir))

	b.Cache = cache.New(store.Bucket(storage.BucketCache))
	if n, err := b.Cache.Purge(ctx); err != nil {
		slog.Warn("Failed to purge expired cache entries", slog.Any("error", err))
	} else if n > 0 {
		slog.Debug("Purged expired cache entries", slog.Int("count", n))
	}
	b.Presets = preset.NewStore(store.Bucket(storage.BucketLocal))

	// 5. Remote API
	b.Client = api.NewClient(cfg, api.WithLimiter(infra.NewRateLimiterFromConfig(cfg)))
	b.Service = service.New(b.Client, b.Cache, b.Presets)

	slog.Debug("Bootstrap complete", slog.String("workspace", workDir))
	return nil
}

func openStore(cfg *infra.Config, workDir string) (storage.Store, error) {
	path := infra.DataPath(workDir, cfg)
	switch cfg.Storage.Driver {
	case infra.DriverSQLite:
		return storage.NewSQLiteStore(path)
	case infra.DriverBolt:
		return storage.NewBoltStore(path)
	case infra.DriverMemory:
		return storage.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
}

func (b *Bootstrap) release() {
	if b.unlock != nil {
		b.unlock()
		b.unlock = nil
	}
}

// Close closes the local store and removes the instance lock.
func (b *Bootstrap) Close() error {
	var err error
	if b.Store != nil {
		err = b.Store.Close()
		b.Store = nil
	}
	b.release()
	return err
}

// Backup writes a snapshot of the local bucket (presets) and keeps the newest keep files.
func (b *Bootstrap) Backup(ctx context.Context, keep int) (string, error) {
	snap, err := storage.CaptureSnapshot(ctx, storage.BucketLocal, b.Store.Bucket(storage.BucketLocal))
	if err != nil {
		return "", err
	}
	path, err := b.Snapshots.Save(snap)
	if err != nil {
		return "", err
	}
	if keep > 0 {
		if err := b.Snapshots.Cleanup(storage.BucketLocal, keep); err != nil {
			slog.Warn("Failed to clean up old backups", slog.Any("error", err))
		}
	}
	return path, nil
}

// ErrNoBackup is returned by Restore when no snapshot has been written yet.
var ErrNoBackup = errors.New("no backup found")

// Restore replaces the local bucket with the newest snapshot.
func (b *Bootstrap) Restore(ctx context.Context) (*storage.Snapshot, error) {
	snap, err := b.Snapshots.LoadLatest(storage.BucketLocal)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNoBackup
	}
	if err := snap.Restore(ctx, b.Store.Bucket(storage.BucketLocal)); err != nil {
		return nil, err
	}
	return snap, nil
}
