package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 2 * time.Minute

// Operation names a GraphQL operation and carries its query document.
type Operation struct {
	Name  string
	Query string
}

// Client is a minimal GraphQL client for the data-protection platform's
// graph API. All configuration is explicit; there is no ambient session
// state shared between clients.
type Client struct {
	endpoint   string
	token      string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for the given graph API endpoint using bearer
// token authentication. A zero timeout falls back to the default.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
		userAgent:  "dirspectre",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetUserAgent overrides the User-Agent header sent with every request.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// Endpoint returns the configured graph API endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type graphRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphError struct {
	Message string `json:"message"`
}

type graphEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphError    `json:"errors"`
}

// Execute issues a single GraphQL request and returns the raw data payload.
// HTTP and network failures surface as TransportError; a malformed body or a
// GraphQL-level error surfaces as ProtocolError.
func (c *Client) Execute(ctx context.Context, op Operation, vars map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphRequest{
		OperationName: op.Name,
		Query:         op.Query,
		Variables:     vars,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", op.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Operation: op.Name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Operation: op.Name, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Operation: op.Name,
			Err:       fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(raw, 200)),
		}
	}

	var envelope graphEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ProtocolError{Operation: op.Name, Reason: fmt.Sprintf("undecodable response body: %v", err)}
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &ProtocolError{Operation: op.Name, Reason: strings.Join(messages, "; ")}
	}

	if len(envelope.Data) == 0 {
		return nil, &ProtocolError{Operation: op.Name, Reason: "response carries no data field"}
	}

	return envelope.Data, nil
}

func truncate(raw []byte, max int) string {
	s := string(raw)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
