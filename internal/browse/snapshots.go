package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/dirspectre/internal/graph"
)

// Snapshot is one point-in-time capture of a directory domain.
type Snapshot struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`
	IsIndexed      bool      `json:"isIndexed"`
	ExpirationDate time.Time `json:"expirationDate"`
}

var snapshotsQuery = graph.Operation{
	Name: "DomainSnapshots",
	Query: `query DomainSnapshots($domainId: UUID!, $first: Int, $after: String) {
  domainSnapshots(domainId: $domainId, first: $first, after: $after) {
    nodes {
      id
      date
      status
      isIndexed
      expirationDate
    }
    pageInfo {
      endCursor
      hasNextPage
    }
  }
}`,
}

// ListSnapshots returns every snapshot of a directory domain, oldest to
// newest as the server reports them. Snapshots without an id are dropped.
func ListSnapshots(ctx context.Context, client *graph.Client, domainID string, pageSize int) ([]Snapshot, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	raw, err := client.FetchAll(ctx, snapshotsQuery, map[string]any{
		"domainId": domainID,
		"first":    pageSize,
	})
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, len(raw))
	for _, payload := range raw {
		var snap Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot of domain %s: %w", domainID, err)
		}
		if snap.ID == "" {
			continue
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, nil
}
