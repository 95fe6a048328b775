package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/barmate/barmate/internal/model"
)

// DefaultOffcutsPath returns the default file path for the offcut ledger.
// This is located at ~/.barmate/offcuts.json.
func DefaultOffcutsPath() string {
	return filepath.Join(DefaultConfigDir(), "offcuts.json")
}

// SaveOffcuts writes the offcut ledger to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveOffcuts(path string, offcuts []model.Offcut) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(offcuts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOffcuts reads the offcut ledger from the specified JSON file.
// A missing file is an empty ledger, not an error.
func LoadOffcuts(path string) ([]model.Offcut, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var offcuts []model.Offcut
	if err := json.Unmarshal(data, &offcuts); err != nil {
		return nil, err
	}
	return offcuts, nil
}

// AppendOffcuts merges newly detected offcuts into an existing ledger,
// skipping duplicate IDs.
func AppendOffcuts(existing, detected []model.Offcut) []model.Offcut {
	ids := make(map[string]bool, len(existing))
	for _, o := range existing {
		ids[o.ID] = true
	}
	for _, o := range detected {
		if !ids[o.ID] {
			existing = append(existing, o)
			ids[o.ID] = true
		}
	}
	return existing
}
