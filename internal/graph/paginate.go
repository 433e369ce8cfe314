package graph

import (
	"context"
	"encoding/json"
	"log/slog"
)

// PageInfo is the cursor block every paginated connection carries.
type PageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// connection is the wire shape of a paginated query result. The API returns
// either a nodes list or Relay-style edges depending on the operation.
type connection struct {
	Nodes []json.RawMessage `json:"nodes"`
	Edges []struct {
		Node json.RawMessage `json:"node"`
	} `json:"edges"`
	PageInfo *PageInfo `json:"pageInfo"`
}

// FetchAll pages through a single connection-returning operation, feeding
// each response's endCursor back as the "after" variable until the server
// reports no further page. Node payloads are returned in server order.
//
// A failure on any page aborts the whole fetch; no retry is attempted and
// nothing fetched so far is returned.
func (c *Client) FetchAll(ctx context.Context, op Operation, vars map[string]any) ([]json.RawMessage, error) {
	var all []json.RawMessage
	cursor := ""
	page := 0

	for {
		pageVars := make(map[string]any, len(vars)+1)
		for k, v := range vars {
			pageVars[k] = v
		}
		if cursor != "" {
			pageVars["after"] = cursor
		}

		data, err := c.Execute(ctx, op, pageVars)
		if err != nil {
			return nil, err
		}

		conn, err := extractConnection(op, data)
		if err != nil {
			return nil, err
		}

		nodes := conn.Nodes
		if len(nodes) == 0 && len(conn.Edges) > 0 {
			nodes = make([]json.RawMessage, 0, len(conn.Edges))
			for _, edge := range conn.Edges {
				nodes = append(nodes, edge.Node)
			}
		}
		all = append(all, nodes...)

		page++
		slog.Debug("Fetched page", "operation", op.Name, "page", page, "nodes", len(nodes), "hasNext", conn.PageInfo.HasNextPage)

		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == "" {
			return all, nil
		}
		cursor = conn.PageInfo.EndCursor
	}
}

// extractConnection locates the paginated connection in a response payload.
// Every paginated operation returns exactly one top-level field holding the
// connection; anything else is a protocol violation.
func extractConnection(op Operation, data json.RawMessage) (*connection, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ProtocolError{Operation: op.Name, Reason: "data field is not an object"}
	}
	if len(fields) != 1 {
		return nil, &ProtocolError{Operation: op.Name, Reason: "expected exactly one connection field in response"}
	}

	for _, raw := range fields {
		var conn connection
		if err := json.Unmarshal(raw, &conn); err != nil {
			return nil, &ProtocolError{Operation: op.Name, Reason: "connection field has unexpected shape"}
		}
		if conn.PageInfo == nil {
			return nil, &ProtocolError{Operation: op.Name, Reason: "connection is missing pageInfo"}
		}
		return &conn, nil
	}
	return nil, &ProtocolError{Operation: op.Name, Reason: "empty response object"}
}
