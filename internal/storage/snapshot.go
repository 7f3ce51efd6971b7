package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Snapshot is a point-in-time copy of one bucket, used for local backups.
type Snapshot struct {
	Bucket string            `json:"bucket"`
	TsUnix int64             `json:"ts"` // milliseconds
	Items  map[string][]byte `json:"items"`
}

// SnapshotManager saves and loads snapshot files in a directory.
type SnapshotManager struct {
	dir string
}

func NewSnapshotManager(dir string) *SnapshotManager {
	return &SnapshotManager{dir: dir}
}

// CaptureSnapshot copies every key of kv.
func CaptureSnapshot(ctx context.Context, name string, kv KV) (*Snapshot, error) {
	keys, err := kv.Keys(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Bucket: name,
		TsUnix: time.Now().UnixMilli(),
		Items:  make(map[string][]byte, len(keys)),
	}
	for _, k := range keys {
		v, ok, err := kv.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if ok {
			snap.Items[k] = v
		}
	}
	return snap, nil
}

// Restore replaces the contents of kv with the snapshot items.
func (snap *Snapshot) Restore(ctx context.Context, kv KV) error {
	if err := kv.Clear(ctx); err != nil {
		return err
	}
	for k, v := range snap.Items {
		if err := kv.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// Save writes a snapshot to disk and returns its path.
func (sm *SnapshotManager) Save(snap *Snapshot) (string, error) {
	if err := os.MkdirAll(sm.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	path := filepath.Join(sm.dir, fmt.Sprintf("snapshot_%s_%d.json", snap.Bucket, snap.TsUnix))

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	slog.Info("Snapshot saved",
		slog.String("bucket", snap.Bucket),
		slog.Int("items", len(snap.Items)),
		slog.String("path", path))

	return path, nil
}

type snapFile struct {
	path string
	ts   int64
}

func (sm *SnapshotManager) list(bucket string) ([]snapFile, error) {
	entries, err := os.ReadDir(sm.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot dir: %w", err)
	}

	prefix := "snapshot_" + bucket + "_"
	var files []snapFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
			continue
		}
		var ts int64
		if _, err := fmt.Sscanf(name[len(prefix):], "%d.json", &ts); err != nil {
			continue
		}
		files = append(files, snapFile{path: filepath.Join(sm.dir, name), ts: ts})
	}

	// newest first
	sort.Slice(files, func(i, j int) bool { return files[i].ts > files[j].ts })
	return files, nil
}

// LoadLatest loads the most recent snapshot of bucket. Returns nil if none exists.
func (sm *SnapshotManager) LoadLatest(bucket string) (*Snapshot, error) {
	files, err := sm.list(bucket)
	if err != nil || len(files) == 0 {
		return nil, err
	}

	data, err := os.ReadFile(files[0].path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	slog.Info("Snapshot loaded",
		slog.String("bucket", bucket),
		slog.String("path", files[0].path))

	return &snap, nil
}

// Cleanup removes old snapshots of bucket, keeping only the latest keepCount.
func (sm *SnapshotManager) Cleanup(bucket string, keepCount int) error {
	files, err := sm.list(bucket)
	if err != nil {
		return err
	}

	for i := keepCount; i < len(files); i++ {
		if err := os.Remove(files[i].path); err != nil {
			slog.Warn("Failed to remove old snapshot", slog.String("path", files[i].path))
		}
	}
	return nil
}
