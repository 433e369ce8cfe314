package baseline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/dirspectre/internal/report"
)

// Entry is one identity-comparable object from a browse report. Objects are
// compared by distinguished name where present: node keys are only unique
// within a single snapshot and cannot anchor a cross-run diff.
type Entry struct {
	Kind              string `json:"kind"`
	Name              string `json:"name"`
	DistinguishedName string `json:"distinguished_name,omitempty"`
}

func (e Entry) key() string {
	if e.DistinguishedName != "" {
		return e.DistinguishedName
	}
	return fmt.Sprintf("%s|%s", e.Kind, e.Name)
}

// DiffResult holds the outcome of comparing a current report against a
// baseline report.
type DiffResult struct {
	New       []Entry
	Removed   []Entry
	Unchanged []Entry
}

// Flatten converts a browse report into a flat entry list.
func Flatten(data report.Data) []Entry {
	var entries []Entry
	for _, obj := range data.Objects {
		entries = append(entries, Entry{
			Kind:              string(obj.Kind),
			Name:              obj.Name,
			DistinguishedName: obj.DistinguishedName,
		})
	}
	return entries
}

// Load reads a previous browse JSON report and extracts entries.
func Load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	var data report.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse baseline: %w", err)
	}
	return Flatten(data), nil
}

// Diff compares current entries against a baseline.
func Diff(current, baseline []Entry) DiffResult {
	baseMap := make(map[string]struct{}, len(baseline))
	for _, e := range baseline {
		baseMap[e.key()] = struct{}{}
	}
	curMap := make(map[string]struct{}, len(current))
	for _, e := range current {
		curMap[e.key()] = struct{}{}
	}

	var result DiffResult
	for _, e := range current {
		if _, exists := baseMap[e.key()]; exists {
			result.Unchanged = append(result.Unchanged, e)
		} else {
			result.New = append(result.New, e)
		}
	}
	for _, e := range baseline {
		if _, exists := curMap[e.key()]; !exists {
			result.Removed = append(result.Removed, e)
		}
	}
	return result
}
