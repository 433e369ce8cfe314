package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/ppiankov/dirspectre/internal/browse"
)

func TestTextReporter_Generate(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	reporter := NewTextReporter(&buf)

	if err := reporter.Generate(sampleData()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"DirSpectre Snapshot Report",
		"Snapshot: snap-1",
		"Domain: corp.example.com",
		"Depth Bound: 5",
		"Containers Discovered: 1",
		"Total Objects: 2",
		"Users: 2",
		"[USER]: alice",
		"[USER]: bob",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTextReporter_Generate_Empty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	reporter := NewTextReporter(&buf)

	data := sampleData()
	data.Objects = nil
	data.Summary.TotalObjects = 0
	data.Summary.ByKind = map[string]int{}

	if err := reporter.Generate(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No objects found in snapshot") {
		t.Fatalf("expected empty-result message, got:\n%s", buf.String())
	}
}

func TestTextReporter_GenerateSnapshots(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	reporter := NewTextReporter(&buf)

	data := SnapshotsData{
		Tool:       "dirspectre",
		Timestamp:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		DomainID:   "dom-1",
		DomainName: "corp.example.com",
		Snapshots: []browse.Snapshot{
			{ID: "s1", Date: time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC), Status: "COMPLETE", IsIndexed: true},
			{ID: "s2", Date: time.Date(2026, 8, 2, 2, 0, 0, 0, time.UTC), Status: "FAILED"},
		},
	}
	if err := reporter.GenerateSnapshots(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"DirSpectre Snapshot Listing",
		"Domain: dom-1 (corp.example.com)",
		"Total Snapshots: 2",
		"s1",
		"COMPLETE",
		"indexed",
		"FAILED",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
