package traffic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

var ErrNoSnapshot = fmt.Errorf("no clone snapshot found")

// Repository persists the clone traffic snapshot.
type Repository interface {
	// Load reads the stored snapshot. Returns ErrNoSnapshot when no
	// snapshot has been stored yet.
	Load(ctx context.Context) (Snapshot, error)
	// LoadOrInit reads the stored snapshot, or returns an empty one when
	// none exists yet.
	LoadOrInit(ctx context.Context) (Snapshot, error)
	Store(ctx context.Context, snapshot Snapshot) error
}

// FileRepository stores the snapshot as a single JSON document. Store is
// atomic (write to a temp file, then rename) so a failed run never leaves
// a partially written store behind.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Load(ctx context.Context) (Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("failed to read clones file %s: %w", r.path, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse clones file %s: %w", r.path, err)
	}
	return snapshot, nil
}

func (r *FileRepository) LoadOrInit(ctx context.Context) (Snapshot, error) {
	snapshot, err := r.Load(ctx)
	if err == ErrNoSnapshot {
		log.Debugf("no snapshot at %s yet, starting empty", r.path)
		return Snapshot{Daily: []DailyRecord{}, Annotations: []Annotation{}}, nil
	}
	return snapshot, err
}

func (r *FileRepository) Store(ctx context.Context, snapshot Snapshot) error {
	if snapshot.Daily == nil {
		snapshot.Daily = []DailyRecord{}
	}
	if snapshot.Annotations == nil {
		snapshot.Annotations = []Annotation{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".fetch_clones-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace clones file %s: %w", r.path, err)
	}
	return nil
}
