package graph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExecute_SendsAuthAndBody(t *testing.T) {
	var gotAuth, gotUA string
	var gotReq graphRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 0)
	op := Operation{Name: "TestOp", Query: "query TestOp { ok }"}

	data, err := client.Execute(context.Background(), op, map[string]any{"x": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected data: %s", data)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
	if gotUA != "dirspectre" {
		t.Fatalf("expected dirspectre user agent, got %q", gotUA)
	}
	if gotReq.OperationName != "TestOp" {
		t.Fatalf("expected operation name TestOp, got %q", gotReq.OperationName)
	}
}

func TestExecute_HTTPErrorIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)
	_, err := client.Execute(context.Background(), Operation{Name: "TestOp"}, nil)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Operation != "TestOp" {
		t.Fatalf("expected operation TestOp, got %q", te.Operation)
	}
}

func TestExecute_UnreachableIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "", 0)
	_, err := client.Execute(context.Background(), Operation{Name: "TestOp"}, nil)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestExecute_GraphQLErrorsAreProtocol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"field does not exist"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)
	_, err := client.Execute(context.Background(), Operation{Name: "TestOp"}, nil)

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestExecute_UndecodableBodyIsProtocol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)
	_, err := client.Execute(context.Background(), Operation{Name: "TestOp"}, nil)

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestExecute_MissingDataIsProtocol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)
	_, err := client.Execute(context.Background(), Operation{Name: "TestOp"}, nil)

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}
