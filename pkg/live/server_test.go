package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// newTestServer spins up a bridge over httptest with its own registry so
// tests don't collide on metric registration.
func newTestServer(t *testing.T, fields map[string]any) *websocket.Conn {
	t.Helper()

	srv := New(Options{
		Fields:   fields,
		Registry: prometheus.NewRegistry(),
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func writeFrame(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readPatch(t *testing.T, conn *websocket.Conn) Patch {
	t.Helper()
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var p Patch
	if err := json.Unmarshal(msg, &p); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	return p
}

func TestBridgeSetAndGet(t *testing.T) {
	conn := newTestServer(t, map[string]any{"name": ""})

	writeFrame(t, conn, `{"op":"set","field":"name","value":"Ada"}`)
	p := readPatch(t, conn)
	if p.Op != "patch" || p.Field != "name" || p.Value != "Ada" {
		t.Errorf("unexpected set patch: %+v", p)
	}

	writeFrame(t, conn, `{"op":"get","field":"name"}`)
	p = readPatch(t, conn)
	if p.Value != "Ada" {
		t.Errorf("expected get to return Ada, got %v", p.Value)
	}
}

func TestBridgeSnapshot(t *testing.T) {
	conn := newTestServer(t, map[string]any{"name": "x", "agree": false})

	writeFrame(t, conn, `{"op":"snapshot"}`)
	p := readPatch(t, conn)

	if p.Op != "snapshot" {
		t.Fatalf("expected snapshot, got %+v", p)
	}
	if p.Fields["name"] != "x" || p.Fields["agree"] != false {
		t.Errorf("unexpected snapshot fields: %v", p.Fields)
	}
}

func TestBridgeUnknownField(t *testing.T) {
	conn := newTestServer(t, map[string]any{"name": ""})

	writeFrame(t, conn, `{"op":"set","field":"missing","value":1}`)
	p := readPatch(t, conn)

	if p.Op != "error" {
		t.Fatalf("expected error patch, got %+v", p)
	}
	if !strings.Contains(p.Error, "missing") {
		t.Errorf("expected error to name the field, got %q", p.Error)
	}

	// Connection must survive the error.
	writeFrame(t, conn, `{"op":"get","field":"name"}`)
	p = readPatch(t, conn)
	if p.Op != "patch" {
		t.Errorf("expected connection to stay usable, got %+v", p)
	}
}

func TestBridgeUnknownOp(t *testing.T) {
	conn := newTestServer(t, map[string]any{"name": ""})

	writeFrame(t, conn, `{"op":"reset"}`)
	p := readPatch(t, conn)
	if p.Op != "error" {
		t.Errorf("expected error for unknown op, got %+v", p)
	}
}

func TestBridgeInvalidFrame(t *testing.T) {
	conn := newTestServer(t, map[string]any{"name": ""})

	writeFrame(t, conn, `not json`)
	p := readPatch(t, conn)
	if p.Op != "error" {
		t.Errorf("expected error for invalid frame, got %+v", p)
	}
}

func TestBridgeSessionsIndependent(t *testing.T) {
	srv := New(Options{
		Fields:   map[string]any{"name": "init"},
		Registry: prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn1, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial 1: %v", err)
	}
	defer conn1.Close()
	conn2, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial 2: %v", err)
	}
	defer conn2.Close()

	writeFrame(t, conn1, `{"op":"set","field":"name","value":"one"}`)
	readPatch(t, conn1)

	// The second session's container is untouched.
	writeFrame(t, conn2, `{"op":"get","field":"name"}`)
	p := readPatch(t, conn2)
	if p.Value != "init" {
		t.Errorf("expected independent session state, got %v", p.Value)
	}
}

func TestHealthz(t *testing.T) {
	srv := New(Options{
		Fields:   map[string]any{},
		Registry: prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(Options{
		Fields:   map[string]any{},
		Registry: prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
