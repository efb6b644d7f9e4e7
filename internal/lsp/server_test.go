package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, out *bytes.Buffer, root string) *Server {
	t.Helper()
	server := NewServer(bytes.NewReader(nil), out, ServerOptions{Debounce: time.Hour})
	server.baseCtx = context.Background()
	params := initializeParams{RootURI: pathToURI(root)}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal initialize: %v", err)
	}
	msg := &rpcMessage{ID: json.RawMessage(`1`), Method: "initialize", Params: payload}
	if err := server.handleInitialize(msg); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return server
}

func openDoc(t *testing.T, server *Server, uri, text string, version int) {
	t.Helper()
	params := didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: version, Text: text},
	}
	payload, _ := json.Marshal(params)
	if err := server.handleDidOpen(&rpcMessage{Method: "textDocument/didOpen", Params: payload}); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
}

func changeDoc(t *testing.T, server *Server, uri, text string, version int) {
	t.Helper()
	params := didChangeTextDocumentParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: uri, Version: version},
		ContentChanges: []textDocumentContentChangeEvent{{Text: text}},
	}
	payload, _ := json.Marshal(params)
	if err := server.handleDidChange(&rpcMessage{Method: "textDocument/didChange", Params: payload}); err != nil {
		t.Fatalf("didChange: %v", err)
	}
}

func flushDiagnostics(server *Server) {
	server.mu.Lock()
	if server.debounceTimer != nil {
		server.debounceTimer.Stop()
	}
	server.mu.Unlock()
	server.runDiagnostics(atomic.LoadUint64(&server.latestSeq))
}

func readMessages(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if err != nil {
			return msgs
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func publishedFor(t *testing.T, out *bytes.Buffer, uri string) []publishDiagnosticsParams {
	t.Helper()
	var all []publishDiagnosticsParams
	for _, msg := range readMessages(t, out) {
		if msg.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var params publishDiagnosticsParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			t.Fatalf("decode publish params: %v", err)
		}
		if params.URI == uri {
			all = append(all, params)
		}
	}
	return all
}

func TestPublishDiagnosticsMapping(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "display.mojom")
	uri := pathToURI(path)

	var out bytes.Buffer
	server := newTestServer(t, &out, root)

	text := "struct Bar {\n  int32 x\n};\n"
	openDoc(t, server, uri, text, 1)
	flushDiagnostics(server)

	published := publishedFor(t, &out, uri)
	if len(published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(published))
	}
	params := published[0]
	if params.Version != 1 {
		t.Fatalf("expected version 1, got %d", params.Version)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(params.Diagnostics))
	}
	got := params.Diagnostics[0]
	if got.Code != "SYN2004" {
		t.Fatalf("unexpected code %q", got.Code)
	}
	if got.Severity != 1 {
		t.Fatalf("unexpected severity %d", got.Severity)
	}
	// The missing ';' is anchored at the closing brace on line 3.
	want := lspRange{Start: position{Line: 2, Character: 0}, End: position{Line: 2, Character: 1}}
	if got.Range != want {
		t.Fatalf("unexpected range %+v", got.Range)
	}
}

func TestSupersededRunPublishesNothing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "display.mojom")
	uri := pathToURI(path)

	var out bytes.Buffer
	server := newTestServer(t, &out, root)

	openDoc(t, server, uri, "struct Bar {\n  int32 x\n};\n", 1)
	stale := atomic.LoadUint64(&server.latestSeq)
	changeDoc(t, server, uri, "struct Bar {\n  int32 x;\n};\n", 2)

	server.mu.Lock()
	if server.debounceTimer != nil {
		server.debounceTimer.Stop()
	}
	server.mu.Unlock()

	server.runDiagnostics(stale)
	if published := publishedFor(t, &out, uri); len(published) != 0 {
		t.Fatalf("stale run published %d messages", len(published))
	}

	flushDiagnostics(server)
	published := publishedFor(t, &out, uri)
	if len(published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(published))
	}
	if published[0].Version != 2 {
		t.Fatalf("expected version 2, got %d", published[0].Version)
	}
	if len(published[0].Diagnostics) != 0 {
		t.Fatalf("expected clean diagnostics, got %d", len(published[0].Diagnostics))
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "display.mojom")
	uri := pathToURI(path)

	var out bytes.Buffer
	server := newTestServer(t, &out, root)
	openDoc(t, server, uri, "struct Bar {\n  int32 x\n};\n", 1)
	flushDiagnostics(server)

	closeParams := didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: uri}}
	payload, _ := json.Marshal(closeParams)
	if err := server.handleDidClose(&rpcMessage{Method: "textDocument/didClose", Params: payload}); err != nil {
		t.Fatalf("didClose: %v", err)
	}

	published := publishedFor(t, &out, uri)
	if len(published) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(published))
	}
	last := published[len(published)-1]
	if len(last.Diagnostics) != 0 {
		t.Fatalf("expected empty diagnostics after close, got %d", len(last.Diagnostics))
	}
}

func TestDefinitionAcrossImport(t *testing.T) {
	root := t.TempDir()
	defText := "module foo;\nstruct StructX {};\n"
	defPath := filepath.Join(root, "defs.mojom")
	if err := os.WriteFile(defPath, []byte(defText), 0o644); err != nil {
		t.Fatalf("write defs.mojom: %v", err)
	}

	useText := "module bar;\nimport \"defs.mojom\";\nstruct Use {\n  foo.StructX field;\n};\n"
	usePath := filepath.Join(root, "use.mojom")
	useURI := pathToURI(usePath)

	var out bytes.Buffer
	server := newTestServer(t, &out, root)
	openDoc(t, server, useURI, useText, 1)

	// Cursor inside "StructX" on line 4.
	line := "  foo.StructX field;"
	char := strings.Index(line, "StructX") + 2
	params := definitionParams{
		TextDocument: textDocumentIdentifier{URI: useURI},
		Position:     position{Line: 3, Character: char},
	}
	payload, _ := json.Marshal(params)
	if err := server.handleDefinition(&rpcMessage{ID: json.RawMessage(`7`), Method: "textDocument/definition", Params: payload}); err != nil {
		t.Fatalf("definition: %v", err)
	}

	msgs := readMessages(t, &out)
	var result []location
	found := false
	for _, msg := range msgs {
		if string(msg.ID) == "7" {
			if err := json.Unmarshal(msg.Result, &result); err != nil {
				t.Fatalf("decode result: %v", err)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("no definition response")
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 location, got %d", len(result))
	}
	if result[0].URI != pathToURI(defPath) {
		t.Fatalf("expected definition in %q, got %q", pathToURI(defPath), result[0].URI)
	}
	wantStart := position{Line: 1, Character: strings.Index("struct StructX {};", "StructX")}
	if result[0].Range.Start != wantStart {
		t.Fatalf("unexpected definition start %+v", result[0].Range.Start)
	}
}

func TestInitializeRequiresRoot(t *testing.T) {
	var out bytes.Buffer
	server := NewServer(bytes.NewReader(nil), &out, ServerOptions{Debounce: time.Hour})
	server.baseCtx = context.Background()

	msg := &rpcMessage{ID: json.RawMessage(`1`), Method: "initialize", Params: json.RawMessage(`{}`)}
	if err := server.handleInitialize(msg); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	msgs := readMessages(t, &out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 response, got %d", len(msgs))
	}
	if msgs[0].Error == nil || msgs[0].Error.Code != -32002 {
		t.Fatalf("expected error -32002, got %+v", msgs[0].Error)
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	var out bytes.Buffer
	server := NewServer(bytes.NewReader(nil), &out, ServerOptions{})
	err := server.handleMessage(&rpcMessage{Method: "exit"})
	if err != ErrExitWithoutShutdown {
		t.Fatalf("expected ErrExitWithoutShutdown, got %v", err)
	}

	server.mu.Lock()
	server.shutdownRequested = true
	server.mu.Unlock()
	err = server.handleMessage(&rpcMessage{Method: "exit"})
	if err != ErrExit {
		t.Fatalf("expected ErrExit, got %v", err)
	}
}
