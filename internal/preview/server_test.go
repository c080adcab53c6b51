package preview

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/widgetkit/pkg/frame"
	"github.com/vango-dev/widgetkit/pkg/memdom"
	"github.com/vango-dev/widgetkit/pkg/projector"
	"github.com/vango-dev/widgetkit/pkg/protocol"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

type fixture struct {
	srv *Server
	ts  *httptest.Server
}

// newFixture serves a counter button whose text is the click count.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := memdom.New()
	loop := frame.NewLoop(1000, logger)

	count := 0
	onClick := func(*vdom.Event) { count++ }
	proj := projector.New(loop, vdom.Options{Surface: doc}, projector.WithLogger(logger))
	_, err := proj.Append(doc.Root(), func() *vdom.VNode {
		return vdom.Div(vdom.Class("counter"),
			vdom.Button(vdom.OnClick(onClick), strconv.Itoa(count)),
		)
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	srv := New(doc, loop, Config{Logger: logger, Registry: prometheus.NewRegistry()})
	loop.AfterFrame(srv.Flush)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	<-loop.Started()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
		cancel()
		<-done
	})
	return &fixture{srv: srv, ts: ts}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(f.ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readPatches(t *testing.T, conn *websocket.Conn) *protocol.PatchesFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", mt)
	}
	ft, payload, err := protocol.DecodeFrame(msg)
	if err != nil || ft != protocol.FramePatches {
		t.Fatalf("DecodeFrame() = %v, %v", ft, err)
	}
	pf, err := protocol.DecodePatches(payload)
	if err != nil {
		t.Fatalf("DecodePatches() error = %v", err)
	}
	return pf
}

func TestPage(t *testing.T) {
	f := newFixture(t)
	resp, body := f.get(t, "/")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{
		`<div class="counter"><button>0</button></div>`,
		`<script src="/client.js" defer></script>`,
		`<title>widgetkit preview</title>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q\n%s", want, body)
		}
	}
}

func TestClientScriptAndHealth(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/client.js")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("client.js Content-Type = %q", ct)
	}
	if !strings.Contains(body, "new WebSocket") {
		t.Error("client.js does not open a websocket")
	}

	resp, body = f.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	resp, body := f.get(t, "/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "widgetkit_preview_clients") {
		t.Errorf("metrics missing client gauge:\n%s", body)
	}
}

func TestWebSocketSnapshotAndEvents(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)

	snap := readPatches(t, conn)
	if !snap.Reset {
		t.Fatal("first frame should reset the client")
	}

	var button uint64
	listening := false
	for _, p := range snap.Patches {
		if p.Op == protocol.PatchCreateElement && p.Name == "button" {
			button = p.ID
		}
		if p.Op == protocol.PatchListen && p.ID == button && p.Name == "click" {
			listening = true
		}
	}
	if button == 0 || !listening {
		t.Fatalf("snapshot has no clickable button:\n%v", snap.Patches)
	}
	if got := f.srv.Clients(); got != 1 {
		t.Errorf("Clients() = %d, want 1", got)
	}

	click := protocol.EncodeFrame(protocol.FrameEvent,
		protocol.EncodeEvent(&protocol.Event{Target: button, Type: "click"}))
	if err := conn.WriteMessage(websocket.BinaryMessage, click); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	update := readPatches(t, conn)
	if update.Reset {
		t.Error("update frame should not reset the client")
	}
	if update.Seq <= snap.Seq {
		t.Errorf("Seq = %d, want > %d", update.Seq, snap.Seq)
	}
	found := false
	for _, p := range update.Patches {
		if p.Op == protocol.PatchSetText && p.ID == button && p.Value == "1" {
			found = true
		}
	}
	if !found {
		t.Errorf("update does not set the count:\n%v", update.Patches)
	}
}

func TestSecondClientGetsCurrentState(t *testing.T) {
	f := newFixture(t)
	first := f.dial(t)
	readPatches(t, first)

	second := f.dial(t)
	snap := readPatches(t, second)
	if !snap.Reset {
		t.Fatal("second client should get a reset frame")
	}

	created := 0
	for _, p := range snap.Patches {
		if p.Op == protocol.PatchCreateElement {
			created++
		}
	}
	if created != 2 {
		t.Errorf("snapshot creates %d elements, want 2", created)
	}
}

func TestCloseDisconnectsClients(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readPatches(t, conn)

	f.srv.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("ReadMessage() error = %v, want normal closure", err)
	}
	if got := f.srv.Clients(); got != 0 {
		t.Errorf("Clients() = %d, want 0", got)
	}
}
