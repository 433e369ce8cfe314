package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/dirspectre/internal/browse"
	"github.com/ppiankov/dirspectre/internal/report"
)

func TestObjectsFlagDefaults(t *testing.T) {
	if objectsFlags.maxDepth != browse.DefaultMaxDepth {
		t.Fatalf("expected default max-depth %d, got %d", browse.DefaultMaxDepth, objectsFlags.maxDepth)
	}
	if objectsFlags.pageSize != 100 {
		t.Fatalf("expected default page-size 100, got %d", objectsFlags.pageSize)
	}
	if objectsFlags.concurrency != 1 {
		t.Fatalf("expected default concurrency 1, got %d", objectsFlags.concurrency)
	}
	if objectsFlags.outputFormat != "text" {
		t.Fatalf("expected default format 'text', got %q", objectsFlags.outputFormat)
	}
	if objectsCmd.Flags().Lookup("format").DefValue != "text" {
		t.Fatalf("expected flag default format text, got %q", objectsCmd.Flags().Lookup("format").DefValue)
	}
}

func TestSnapshotsFlagDefaults(t *testing.T) {
	if snapshotsFlags.pageSize != 100 {
		t.Fatalf("expected default page-size 100, got %d", snapshotsFlags.pageSize)
	}
	if snapshotsFlags.outputFormat != "text" {
		t.Fatalf("expected default format 'text', got %q", snapshotsFlags.outputFormat)
	}
}

func TestResolveInt(t *testing.T) {
	tests := []struct {
		name        string
		flagValue   int
		flagDefault int
		cfgValue    int
		want        int
	}{
		{"flag overrides config", 7, 5, 3, 7},
		{"config fills unset flag", 5, 5, 3, 3},
		{"default when nothing set", 5, 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveInt(tt.flagValue, tt.flagDefault, tt.cfgValue); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRunObjects_RequiresSnapshot(t *testing.T) {
	old := objectsFlags
	t.Cleanup(func() { objectsFlags = old })

	objectsFlags.apiURL = "https://spectre.example.com/api/graphql"
	objectsFlags.snapshotID = ""
	if err := runObjects(objectsCmd, nil); err == nil {
		t.Fatal("expected error without --snapshot")
	}
}

func TestRunObjects_RejectsMalformedSnapshotID(t *testing.T) {
	old := objectsFlags
	t.Cleanup(func() { objectsFlags = old })

	objectsFlags.apiURL = "https://spectre.example.com/api/graphql"
	objectsFlags.snapshotID = "not-a-uuid"
	if err := runObjects(objectsCmd, nil); err == nil {
		t.Fatal("expected error for malformed snapshot id")
	}
}

func TestRunObjects_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		parentID, _ := req.Variables["parentId"].(float64)

		var nodes string
		switch int64(parentID) {
		case 0:
			nodes = `{"id":10,"name":"Eng","objectType":"ORGANIZATIONAL_UNIT","distinguishedName":"OU=Eng,DC=corp"}`
		case 10:
			if req.Variables["containersOnly"] == true {
				nodes = ``
			} else {
				nodes = `{"id":101,"name":"alice","objectType":"USER","distinguishedName":"CN=alice,OU=Eng,DC=corp"}`
			}
		}
		_, _ = fmt.Fprintf(w, `{"data":{"snapshotNodeChildren":{"nodes":[%s],"pageInfo":{"endCursor":"","hasNextPage":false}}}}`, nodes)
	}))
	defer server.Close()

	old := objectsFlags
	t.Cleanup(func() { objectsFlags = old })
	t.Setenv(tokenEnvVar, "test-token")

	outputFile := filepath.Join(t.TempDir(), "report.json")
	objectsFlags.apiURL = server.URL
	objectsFlags.snapshotID = "a3c5d2f0-1234-5678-9abc-def012345678"
	objectsFlags.domainID = "dom-1"
	objectsFlags.domainName = "corp.example.com"
	objectsFlags.outputFormat = "json"
	objectsFlags.outputFile = outputFile
	objectsFlags.noProgress = true

	if err := runObjects(objectsCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var data report.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if data.Summary.Containers != 1 {
		t.Fatalf("expected 1 container, got %d", data.Summary.Containers)
	}
	if len(data.Objects) != 1 || data.Objects[0].Name != "alice" {
		t.Fatalf("unexpected objects: %+v", data.Objects)
	}
	if data.Objects[0].DomainName != "corp.example.com" {
		t.Fatalf("domain context not injected: %+v", data.Objects[0])
	}
}

func TestRunSnapshots_RequiresDomain(t *testing.T) {
	old := snapshotsFlags
	t.Cleanup(func() { snapshotsFlags = old })

	snapshotsFlags.apiURL = "https://spectre.example.com/api/graphql"
	snapshotsFlags.domainID = ""
	if err := runSnapshots(snapshotsCmd, nil); err == nil {
		t.Fatal("expected error without --domain-id")
	}
}
