package uiconfig

import (
	"encoding/json"
	"os"
	"sync"
)

// LabelStore persists the tableName -> displayLabel map as a flat JSON file.
// Every read loads the file fresh and every write rewrites it wholesale;
// the mutex serializes the read-modify-write within this process, while
// concurrent writers in other processes remain last-writer-wins.
type LabelStore struct {
	mu   sync.Mutex
	path string
}

func NewLabelStore(path string) *LabelStore {
	if path == "" {
		path = "table-labels.json"
	}
	return &LabelStore{path: path}
}

// Labels reads the full label map. A missing or unreadable file yields an
// empty map rather than an error: labels are cosmetic.
func (s *LabelStore) Labels() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}

	var labels map[string]string
	if err := json.Unmarshal(data, &labels); err != nil {
		return map[string]string{}
	}
	return labels
}

// SaveLabel upserts one table's display label. Last write wins.
func (s *LabelStore) SaveLabel(tableName, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	labels := s.Labels()
	labels[tableName] = label

	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// LabelFor falls back to the raw table name when no label is configured.
func LabelFor(labels map[string]string, tableName string) string {
	if label, ok := labels[tableName]; ok && label != "" {
		return label
	}
	return tableName
}
