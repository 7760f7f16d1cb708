// Package sim provides an in-process overlay runtime. It keeps no surfaces,
// only the set of live handles, and answers every request from its own
// goroutine after a configurable delay, the way a real host would.
package sim

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
)

// CompletionPath selects how spawn completions are delivered.
type CompletionPath string

const (
	// PathEventResponse delivers spawn completions as EventResponse.
	PathEventResponse CompletionPath = "event_response"
	// PathCallback delivers spawn completions as Callback.
	PathCallback CompletionPath = "callback"
)

// Options configures a simulated runtime.
type Options struct {
	SpawnDelay time.Duration
	CloseDelay time.Duration
	Path       CompletionPath
	// Feedback emits a Notification before every completion.
	Feedback bool
}

type delivery struct {
	delay time.Duration
	cmd   runtime.Command
}

// Runtime is a simulated overlay runtime. It is safe for concurrent use.
type Runtime struct {
	opts   Options
	logger *logging.Logger

	mu       sync.Mutex
	callback func(runtime.Command)
	nextUID  runtime.UID
	live     map[runtime.UID]runtime.WebContents
	queue    *runtime.Queue[delivery]
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New creates a simulated runtime and starts its delivery goroutine.
func New(opts Options, logger *logging.Logger) *Runtime {
	if opts.Path == "" {
		opts.Path = PathEventResponse
	}

	r := &Runtime{
		opts:    opts,
		logger:  logger,
		nextUID: 1,
		live:    make(map[runtime.UID]runtime.WebContents),
		queue:   runtime.NewQueue[delivery](),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// RegisterCallback installs the delivery target.
func (r *Runtime) RegisterCallback(fn func(runtime.Command)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callback = fn
}

// SpawnOverlay allocates a handle and reports it later. The direct result is
// always zero, like the host this simulates.
func (r *Runtime) SpawnOverlay(opts runtime.SpawnOptions) runtime.UID {
	r.mu.Lock()
	uid := r.nextUID
	r.nextUID++
	r.live[uid] = runtime.WebContents{Width: opts.Width, Height: opts.Height}
	r.mu.Unlock()

	r.logger.Debugf("spawn %q -> %s", opts.Name, uid)
	r.feedback(fmt.Sprintf("spawning overlay %s", uid))
	if r.opts.Path == PathCallback {
		r.schedule(r.opts.SpawnDelay, runtime.Callback{Kind: runtime.KindFinishSpawnOverlay, UID: uid})
	} else {
		r.schedule(r.opts.SpawnDelay, runtime.EventResponse{Kind: runtime.KindFinishSpawnOverlay, UID: uid})
	}
	return 0
}

// CloseOverlay forgets the handle and reports the close later. Unknown
// handles only produce feedback.
func (r *Runtime) CloseOverlay(uid runtime.UID) {
	r.mu.Lock()
	_, ok := r.live[uid]
	delete(r.live, uid)
	r.mu.Unlock()

	if !ok {
		r.logger.Warnf("close of unknown overlay %s", uid)
		r.schedule(0, runtime.Notification{Kind: runtime.KindFeedback, Message: fmt.Sprintf("no overlay %s", uid)})
		return
	}

	r.feedback(fmt.Sprintf("closing overlay %s", uid))
	r.schedule(r.opts.CloseDelay, runtime.EventResponse{Kind: runtime.KindFinishCloseOverlay, UID: uid})
}

// SetContentsWebsite records the contents and reports the change as an Event.
func (r *Runtime) SetContentsWebsite(uid runtime.UID, contents runtime.WebContents) {
	r.mu.Lock()
	_, ok := r.live[uid]
	if ok {
		r.live[uid] = contents
	}
	r.mu.Unlock()

	if !ok {
		r.logger.Warnf("set contents on unknown overlay %s", uid)
		return
	}
	r.schedule(0, runtime.Event{Kind: runtime.KindOverlayChanged, UID: uid})
}

// Contents returns the contents last set on uid.
func (r *Runtime) Contents(uid runtime.UID) (runtime.WebContents, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contents, ok := r.live[uid]
	return contents, ok
}

// Live returns the handles the runtime currently considers alive.
func (r *Runtime) Live() []runtime.UID {
	r.mu.Lock()
	defer r.mu.Unlock()

	uids := make([]runtime.UID, 0, len(r.live))
	for uid := range r.live {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	return uids
}

// Emit delivers an arbitrary command, as an external actor would.
func (r *Runtime) Emit(cmd runtime.Command) {
	r.schedule(0, cmd)
}

// Close stops delivery. Scheduled commands are discarded.
func (r *Runtime) Close() error {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	<-r.done
	return nil
}

func (r *Runtime) feedback(message string) {
	if r.opts.Feedback {
		r.schedule(0, runtime.Notification{Kind: runtime.KindFeedback, Message: message})
	}
}

func (r *Runtime) schedule(delay time.Duration, cmd runtime.Command) {
	r.queue.Push(delivery{delay: delay, cmd: cmd})
}

// run delivers one command at a time, in request order.
func (r *Runtime) run() {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			return
		case <-r.queue.Ready():
			for {
				d, ok := r.queue.Pop()
				if !ok {
					break
				}
				if !r.deliver(d) {
					return
				}
			}
		}
	}
}

// deliver waits out d's delay and hands d to the callback. It reports false
// once the runtime is stopped.
func (r *Runtime) deliver(d delivery) bool {
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		select {
		case <-r.stop:
			timer.Stop()
			return false
		case <-timer.C:
		}
	} else {
		select {
		case <-r.stop:
			return false
		default:
		}
	}

	r.mu.Lock()
	fn := r.callback
	r.mu.Unlock()
	if fn == nil {
		r.logger.Warnf("no callback registered, dropping %s", runtime.Describe(d.cmd))
		return true
	}
	fn(d.cmd)
	return true
}
