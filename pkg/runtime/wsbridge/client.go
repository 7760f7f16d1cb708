// Package wsbridge implements the overlay runtime as a client of a remote
// overlay host reachable over a websocket. Requests go out as JSON frames;
// notifications come back as JSON frames and are delivered from the read
// goroutine.
package wsbridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// ErrNotConnected is logged when a request is made after the connection ended.
var ErrNotConnected = errors.New("not connected to overlay host")

// Runtime is a websocket client of an overlay host.
type Runtime struct {
	conn   *websocket.Conn
	logger *logging.Logger

	mu       sync.Mutex
	callback func(runtime.Command)

	send      *runtime.Queue[RequestFrame]
	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
	readDone  chan struct{}
}

// Dial connects to the overlay host at endpoint.
func Dial(ctx context.Context, endpoint string, logger *logging.Logger) (*Runtime, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to overlay host %s: %w", endpoint, err)
	}

	r := &Runtime{
		conn:     conn,
		logger:   logger,
		send:     runtime.NewQueue[RequestFrame](),
		closed:   make(chan struct{}),
		readDone: make(chan struct{}),
	}

	go r.writePump()
	go r.readPump()

	logger.Infof("connected to overlay host %s", endpoint)
	return r, nil
}

// RegisterCallback installs the delivery target.
func (r *Runtime) RegisterCallback(fn func(runtime.Command)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callback = fn
}

// SpawnOverlay asks the host for a new overlay. The direct result is always
// zero; the handle arrives with the spawn completion.
func (r *Runtime) SpawnOverlay(opts runtime.SpawnOptions) runtime.UID {
	r.request(RequestFrame{Op: OpSpawn, Options: &opts})
	return 0
}

// CloseOverlay asks the host to destroy uid.
func (r *Runtime) CloseOverlay(uid runtime.UID) {
	r.request(RequestFrame{Op: OpClose, UID: uid})
}

// SetContentsWebsite asks the host to show contents in uid.
func (r *Runtime) SetContentsWebsite(uid runtime.UID, contents runtime.WebContents) {
	r.request(RequestFrame{Op: OpSetContents, UID: uid, Contents: &contents})
}

// Done is closed when the connection has ended.
func (r *Runtime) Done() <-chan struct{} {
	return r.readDone
}

// Close sends a close frame and tears the connection down.
func (r *Runtime) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.closed)

		r.writeMu.Lock()
		_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = r.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		r.writeMu.Unlock()

		err = r.conn.Close()
	})
	return err
}

func (r *Runtime) request(frame RequestFrame) {
	frame.ID = uuid.NewString()

	if !r.connected() {
		r.logger.Warnf("%s request %s dropped: %v", frame.Op, frame.ID, ErrNotConnected)
		return
	}

	r.send.Push(frame)
	r.logger.Debugf("queued %s request %s", frame.Op, frame.ID)
}

func (r *Runtime) connected() bool {
	select {
	case <-r.closed:
		return false
	case <-r.readDone:
		return false
	default:
		return true
	}
}

func (r *Runtime) readPump() {
	defer close(r.readDone)

	_ = r.conn.SetReadDeadline(time.Now().Add(pongWait))
	r.conn.SetPongHandler(func(string) error {
		return r.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame NotificationFrame
		if err := r.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.logger.Errorf("overlay host read error: %v", err)
			}
			return
		}
		r.deliver(frame.Command())
	}
}

func (r *Runtime) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-r.closed:
			return
		case <-r.readDone:
			return
		case <-r.send.Ready():
			for r.connected() {
				frame, ok := r.send.Pop()
				if !ok {
					break
				}
				if err := r.write(frame); err != nil {
					r.logger.Errorf("sending %s request %s: %v", frame.Op, frame.ID, err)
					return
				}
			}
		case <-ticker.C:
			r.writeMu.Lock()
			_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := r.conn.WriteMessage(websocket.PingMessage, nil)
			r.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (r *Runtime) write(frame RequestFrame) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return r.conn.WriteJSON(frame)
}

func (r *Runtime) deliver(cmd runtime.Command) {
	r.mu.Lock()
	fn := r.callback
	r.mu.Unlock()

	if fn == nil {
		r.logger.Warnf("no callback registered, dropping %s", runtime.Describe(cmd))
		return
	}
	fn(cmd)
}
