package websocket

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/graphmem/graphmem/internal/config"
	"github.com/graphmem/graphmem/internal/graph"
	"github.com/graphmem/graphmem/internal/server"
)

// ─── Test helpers ───────────────────────────────────────────────────────────

func newTestBridge(t *testing.T) (*httptest.Server, *graph.Store) {
	t.Helper()
	store, err := graph.New(graph.Config{Path: filepath.Join(t.TempDir(), "memory.json")}, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	mcp := server.New(config.Config{FilePath: "memory.json", Profile: config.ProfileFull}, store)
	ws := NewServer(mcp, nil, zap.NewNop())

	ts := httptest.NewServer(ws.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func writeFrame(t *testing.T, conn *websocket.Conn, request string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(request)); err != nil {
		t.Fatalf("writing frame: %v", err)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	return data
}

func frameID(t *testing.T, data []byte) int {
	t.Helper()
	var frame struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decoding frame id from %s: %v", data, err)
	}
	return frame.ID
}

// ─── Bridge behavior ────────────────────────────────────────────────────────

func TestBridge_ToolsList(t *testing.T) {
	ts, _ := newTestBridge(t)
	conn := dial(t, ts)

	writeFrame(t, conn, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	data := readFrame(t, conn)

	if !strings.Contains(string(data), "create_entities") {
		t.Errorf("tools/list response missing tools: %s", data)
	}
}

func TestBridge_ToolCallPersists(t *testing.T) {
	ts, store := newTestBridge(t)
	conn := dial(t, ts)

	writeFrame(t, conn, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"create_entities","arguments":{"entities":[{"name":"alice","entityType":"person"}]}}}`)
	data := readFrame(t, conn)

	if !strings.Contains(string(data), "Created 1 entities") {
		t.Errorf("unexpected tool response: %s", data)
	}
	if _, ok := store.ReadGraph().Graph.Entities.Get("alice"); !ok {
		t.Error("entity created over websocket not in store")
	}
}

func TestBridge_ResponsesKeepRequestOrder(t *testing.T) {
	ts, _ := newTestBridge(t)
	conn := dial(t, ts)

	writeFrame(t, conn, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	writeFrame(t, conn, `{"jsonrpc":"2.0","id":2,"method":"ping"}`)

	if got := frameID(t, readFrame(t, conn)); got != 1 {
		t.Errorf("first response id = %d, want 1", got)
	}
	if got := frameID(t, readFrame(t, conn)); got != 2 {
		t.Errorf("second response id = %d, want 2", got)
	}
}

func TestBridge_NotificationProducesNoFrame(t *testing.T) {
	ts, _ := newTestBridge(t)
	conn := dial(t, ts)

	writeFrame(t, conn, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	writeFrame(t, conn, `{"jsonrpc":"2.0","id":7,"method":"ping"}`)

	// The first frame back must answer the ping; the notification is
	// swallowed.
	if got := frameID(t, readFrame(t, conn)); got != 7 {
		t.Errorf("response id = %d, want 7", got)
	}
}

func TestBridge_MalformedFrameGetsErrorResponse(t *testing.T) {
	ts, _ := newTestBridge(t)
	conn := dial(t, ts)

	writeFrame(t, conn, `{this is not json`)
	data := readFrame(t, conn)

	if !strings.Contains(string(data), `"error"`) {
		t.Errorf("expected JSON-RPC error frame, got: %s", data)
	}
}

func TestBridge_BinaryFramesIgnored(t *testing.T) {
	ts, _ := newTestBridge(t)
	conn := dial(t, ts)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02}); err != nil {
		t.Fatalf("writing binary frame: %v", err)
	}
	writeFrame(t, conn, `{"jsonrpc":"2.0","id":3,"method":"ping"}`)

	if got := frameID(t, readFrame(t, conn)); got != 3 {
		t.Errorf("response id = %d, want 3", got)
	}
}

// ─── Health endpoint ────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	ts, _ := newTestBridge(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading health body: %v", err)
	}
	for _, want := range []string{`"status":"healthy"`, "activeConnections"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("health body missing %s: %s", want, body)
		}
	}
}
