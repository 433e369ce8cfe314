package report

import (
	"encoding/json"
	"io"

	"github.com/ppiankov/dirspectre/internal/browse"
)

// JSONReporter generates JSON reports
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Generate generates a JSON browse report
func (r *JSONReporter) Generate(data Data) error {
	data.Timestamp = data.Timestamp.UTC()
	if data.Objects == nil {
		data.Objects = []browse.ObjectRecord{}
	}
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// GenerateSnapshots generates a JSON snapshot listing
func (r *JSONReporter) GenerateSnapshots(data SnapshotsData) error {
	data.Timestamp = data.Timestamp.UTC()
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
