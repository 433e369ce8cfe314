package report

import (
	"time"

	"github.com/ppiankov/dirspectre/internal/browse"
	"github.com/ppiankov/dirspectre/internal/summary"
)

// Reporter interface for different report formats
type Reporter interface {
	Generate(data Data) error
	GenerateSnapshots(data SnapshotsData) error
}

// Data contains all browse report data
type Data struct {
	Tool      string                `json:"tool"`
	Version   string                `json:"version"`
	RunID     string                `json:"run_id"`
	Timestamp time.Time             `json:"timestamp"`
	Config    Config                `json:"config"`
	Summary   summary.Summary       `json:"summary"`
	Objects   []browse.ObjectRecord `json:"objects"`
}

// Config echoes the browse configuration into the report
type Config struct {
	APIURL     string `json:"api_url"`
	SnapshotID string `json:"snapshot_id"`
	DomainID   string `json:"domain_id,omitempty"`
	DomainName string `json:"domain_name,omitempty"`
	MaxDepth   int    `json:"max_depth"`
}

// SnapshotsData contains a domain's snapshot listing
type SnapshotsData struct {
	Tool       string            `json:"tool"`
	Version    string            `json:"version"`
	RunID      string            `json:"run_id"`
	Timestamp  time.Time         `json:"timestamp"`
	DomainID   string            `json:"domain_id"`
	DomainName string            `json:"domain_name,omitempty"`
	Snapshots  []browse.Snapshot `json:"snapshots"`
}
