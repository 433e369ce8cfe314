package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Pusher sends a finished JSON report to a central collection endpoint via
// HTTP POST, for teams aggregating reports across domains.
type Pusher struct {
	url    string
	client *http.Client
}

// NewPusher creates a Pusher for the given endpoint. If client is nil, a
// default client with a 30s timeout is used.
func NewPusher(url string, client *http.Client) *Pusher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Pusher{url: url, client: client}
}

// Push POSTs the report as JSON. A non-2xx response is an error.
func (p *Pusher) Push(data Data) error {
	data.Timestamp = data.Timestamp.UTC()
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	resp, err := p.client.Post(p.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push report: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
