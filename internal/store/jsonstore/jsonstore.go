package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/atlas/internal/model"
)

// JSON export of normalized countries. Single file, human-readable, portable.
// Written by `atlas export`; the viewer never reads it back.

const DefaultFileName = "countries.json"

// Save writes countries as indented JSON, replacing path atomically.
func Save(path string, countries []model.Country) error {
	if path == "" {
		path = DefaultFileName
	}
	if countries == nil {
		countries = []model.Country{}
	}
	b, err := json.MarshalIndent(countries, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
