package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func frame(t *testing.T, method string, params interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	msg := jsonrpcMessage{JSONRPC: "2.0", ID: 1, Method: method, Params: body}
	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	return []byte(fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(raw), raw))
}

func TestServerInitializeRoundTrip(t *testing.T) {
	var in bytes.Buffer
	in.Write(frame(t, "initialize", map[string]interface{}{}))

	var out bytes.Buffer
	s, err := NewServer(&in, &out)
	if err != nil {
		t.Fatal(err)
	}

	msg, err := s.readMessage()
	if err != nil {
		t.Fatal(err)
	}
	if msg.Method != "initialize" {
		t.Fatalf("got method %q", msg.Method)
	}
	s.handleMessage(msg)

	if !strings.Contains(out.String(), `"name":"xs-lsp"`) {
		t.Fatalf("expected initialize response to mention xs-lsp, got: %s", out.String())
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	var in bytes.Buffer
	var out bytes.Buffer
	s, err := NewServer(&in, &out)
	if err != nil {
		t.Fatal(err)
	}
	s.handleDidOpen(&jsonrpcMessage{Params: mustJSON(t, DidOpenParams{
		TextDocument: TextDocumentItem{URI: "file:///main.xs", Version: 1, Text: `void main() { x = 1; }`},
	})})
	if !strings.Contains(out.String(), "publishDiagnostics") {
		t.Fatalf("expected a publishDiagnostics notification, got: %s", out.String())
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
