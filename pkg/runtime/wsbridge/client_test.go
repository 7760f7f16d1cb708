package wsbridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost is a minimal overlay host speaking the frame protocol.
type fakeHost struct {
	upgrader websocket.Upgrader

	mu       sync.Mutex
	requests []RequestFrame
	nextUID  runtime.UID
	conn     *websocket.Conn
}

func (h *fakeHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.conn = conn
	h.mu.Unlock()
	defer conn.Close()

	for {
		var req RequestFrame
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		h.mu.Lock()
		h.requests = append(h.requests, req)
		var reply runtime.Command
		switch req.Op {
		case OpSpawn:
			h.nextUID++
			reply = runtime.EventResponse{Kind: runtime.KindFinishSpawnOverlay, UID: h.nextUID}
		case OpClose:
			reply = runtime.EventResponse{Kind: runtime.KindFinishCloseOverlay, UID: req.UID}
		case OpSetContents:
			reply = runtime.Event{Kind: runtime.KindOverlayChanged, UID: req.UID}
		}
		err := conn.WriteJSON(FrameFor(reply))
		h.mu.Unlock()
		if err != nil {
			return
		}
	}
}

func (h *fakeHost) push(t *testing.T, raw string) {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	require.NotNil(t, h.conn)
	require.NoError(t, h.conn.WriteMessage(websocket.TextMessage, []byte(raw)))
}

func (h *fakeHost) recorded() []RequestFrame {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]RequestFrame, len(h.requests))
	copy(out, h.requests)
	return out
}

func dialHost(t *testing.T) (*Runtime, *fakeHost, chan runtime.Command) {
	t.Helper()
	host := &fakeHost{}
	server := httptest.NewServer(host)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	rt, err := Dial(context.Background(), wsURL, logging.Discard("wsbridge"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	cmds := make(chan runtime.Command, 16)
	rt.RegisterCallback(func(cmd runtime.Command) { cmds <- cmd })
	return rt, host, cmds
}

func next(t *testing.T, cmds chan runtime.Command) runtime.Command {
	t.Helper()
	select {
	case cmd := <-cmds:
		return cmd
	case <-time.After(2 * time.Second):
		t.Fatal("no command delivered")
		return nil
	}
}

func TestRuntime_RoundTrip(t *testing.T) {
	rt, host, cmds := dialHost(t)

	assert.Zero(t, rt.SpawnOverlay(runtime.SpawnOptions{Name: "chat", Width: 400, Height: 500}))
	assert.Equal(t, runtime.EventResponse{Kind: runtime.KindFinishSpawnOverlay, UID: 1}, next(t, cmds))

	contents := runtime.WebContents{Width: 400, Height: 500, URL: "https://example.com/chat"}
	rt.SetContentsWebsite(1, contents)
	assert.Equal(t, runtime.Event{Kind: runtime.KindOverlayChanged, UID: 1}, next(t, cmds))

	rt.CloseOverlay(1)
	assert.Equal(t, runtime.EventResponse{Kind: runtime.KindFinishCloseOverlay, UID: 1}, next(t, cmds))

	reqs := host.recorded()
	require.Len(t, reqs, 3)
	assert.Equal(t, OpSpawn, reqs[0].Op)
	require.NotNil(t, reqs[0].Options)
	assert.Equal(t, "chat", reqs[0].Options.Name)
	assert.Equal(t, OpSetContents, reqs[1].Op)
	assert.Equal(t, &contents, reqs[1].Contents)
	assert.Equal(t, OpClose, reqs[2].Op)
	assert.EqualValues(t, 1, reqs[2].UID)

	for _, req := range reqs {
		assert.NotEmpty(t, req.ID)
	}
}

func TestRuntime_UnsolicitedFrames(t *testing.T) {
	rt, host, cmds := dialHost(t)
	rt.SpawnOverlay(runtime.SpawnOptions{})
	next(t, cmds)

	host.push(t, `{"category":"callback","kind":"finish_spawn_overlay","uid":9}`)
	assert.Equal(t, runtime.Callback{Kind: runtime.KindFinishSpawnOverlay, UID: 9}, next(t, cmds))

	host.push(t, `{"category":"telemetry","kind":"fps","message":"90"}`)
	assert.Equal(t, runtime.Notification{Kind: runtime.KindFeedback, Message: "90"}, next(t, cmds))
}

func TestRuntime_RequestsAfterCloseAreDropped(t *testing.T) {
	rt, host, _ := dialHost(t)
	require.NoError(t, rt.Close())

	rt.CloseOverlay(4)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, host.recorded())
}

func TestDial_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Dial(ctx, "ws://127.0.0.1:1/overlays", logging.Discard("wsbridge"))
	assert.Error(t, err)
}

func TestRuntime_RequestBurstDoesNotBlock(t *testing.T) {
	rt, host, _ := dialHost(t)
	rt.RegisterCallback(func(runtime.Command) {})

	const burst = 500
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= burst; i++ {
			rt.CloseOverlay(runtime.UID(i))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("requests blocked on the connection")
	}

	require.Eventually(t, func() bool { return len(host.recorded()) == burst }, 5*time.Second, 10*time.Millisecond)
	for i, req := range host.recorded() {
		assert.EqualValues(t, i+1, req.UID)
	}
}
