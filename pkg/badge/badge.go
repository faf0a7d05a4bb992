package badge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Badge follows the shields.io endpoint schema.
type Badge struct {
	Label   string `json:"label"`
	Message string `json:"message"`
	Color   string `json:"color"`
}

// Writer persists badge descriptors for an external badge service to pick up.
type Writer interface {
	Write(name string, badge Badge) error
}

// FileWriter writes one JSON document per badge into a directory.
type FileWriter struct {
	dir string
}

func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

func (w *FileWriter) Write(name string, badge Badge) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create badge directory %s: %w", w.dir, err)
	}

	data, err := json.MarshalIndent(badge, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode badge %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write badge %s: %w", path, err)
	}
	return nil
}
