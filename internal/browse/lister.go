package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ppiankov/dirspectre/internal/graph"
)

const defaultPageSize = 100

// childrenQuery is the one browse primitive the graph API offers: list the
// direct children of a node in a snapshot, optionally restricted to
// container types. There is no recursive variant.
var childrenQuery = graph.Operation{
	Name: "SnapshotNodeChildren",
	Query: `query SnapshotNodeChildren($snapshotFid: UUID!, $parentId: Long!, $containersOnly: Boolean!, $first: Int, $after: String) {
  snapshotNodeChildren(snapshotFid: $snapshotFid, parentId: $parentId, containersOnly: $containersOnly, first: $first, after: $after) {
    nodes {
      id
      name
      description
      objectType
      distinguishedName
    }
    pageInfo {
      endCursor
      hasNextPage
    }
  }
}`,
}

// ChildLister lists the direct children of one node in a snapshot.
type ChildLister interface {
	ListChildren(ctx context.Context, snapshot SnapshotHandle, key NodeKey, containersOnly bool) ([]Node, error)
}

// GraphLister implements ChildLister against the graph API.
type GraphLister struct {
	client   *graph.Client
	pageSize int
}

// NewGraphLister creates a lister backed by the given graph client.
func NewGraphLister(client *graph.Client, pageSize int) *GraphLister {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &GraphLister{client: client, pageSize: pageSize}
}

// ListChildren fetches all children of the given node across however many
// pages the server needs. The root sentinel is filtered out, and when
// containersOnly is set the result is re-filtered locally rather than
// trusting the server-side restriction. An empty result is normal for a
// leaf container. Fetch errors propagate unchanged.
func (l *GraphLister) ListChildren(ctx context.Context, snapshot SnapshotHandle, key NodeKey, containersOnly bool) ([]Node, error) {
	vars := map[string]any{
		"snapshotFid":    string(snapshot),
		"parentId":       int64(key),
		"containersOnly": containersOnly,
		"first":          l.pageSize,
	}

	raw, err := l.client.FetchAll(ctx, childrenQuery, vars)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(raw))
	for _, payload := range raw {
		var node Node
		if err := json.Unmarshal(payload, &node); err != nil {
			return nil, fmt.Errorf("decode child of node %d: %w", key, err)
		}
		if node.Key == RootKey {
			continue
		}
		if containersOnly && !node.IsContainer() {
			continue
		}
		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		slog.Debug("Node has no children", "snapshot", snapshot, "node", key, "containersOnly", containersOnly)
	}

	return nodes, nil
}
