// Package importer reads, validates and converts export bundles.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// BundleVersion is written into every export.
const BundleVersion = "1.0"

// Bundle is the top-level JSON structure of an export file. Data maps
// logical store keys to their raw values.
type Bundle struct {
	Data       map[string]json.RawMessage `json:"data"`
	ExportDate time.Time                  `json:"exportDate"`
	Version    string                     `json:"version"`
}

// attendanceImport is the minimal shape checked before conversion.
type attendanceImport struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	TimeIn     string   `json:"timeIn"`
	TotalHours *float64 `json:"totalHours"`
}

type activityImport struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// ParseBundle parses an export bundle.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing export bundle: %w", err)
	}
	return &b, nil
}

// LoadBundle reads and parses an export file.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBundle(data)
}
