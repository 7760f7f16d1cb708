// Package browser implements the overlay runtime on top of a Chromium browser
// driven by Playwright. Every overlay is a page; website contents are loaded
// by navigating the page.
//
// All Playwright work happens on one worker goroutine, so runtime calls made
// from the UI loop return immediately and results arrive as commands.
package browser

import (
	"fmt"
	"sync"

	"github.com/entrhq/hud/pkg/logging"
	"github.com/entrhq/hud/pkg/runtime"
)

const (
	// DefaultWidth is the page width used when a spawn does not ask for one.
	DefaultWidth = 400
	// DefaultHeight is the page height used when a spawn does not ask for one.
	DefaultHeight = 500
	// DefaultTimeout bounds Playwright operations, in milliseconds.
	DefaultTimeout = 30000
)

// Options configures the browser runtime.
type Options struct {
	Headless      bool
	DefaultWidth  int
	DefaultHeight int
	Timeout       float64
}

func (o *Options) applyDefaults() {
	if o.DefaultWidth == 0 {
		o.DefaultWidth = DefaultWidth
	}
	if o.DefaultHeight == 0 {
		o.DefaultHeight = DefaultHeight
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
}

// Runtime is an overlay runtime backed by browser pages.
type Runtime struct {
	opts   Options
	host   host
	logger *logging.Logger

	mu       sync.Mutex
	callback func(runtime.Command)
	nextUID  runtime.UID
	surfaces map[runtime.UID]surface

	jobs     *runtime.Queue[func()]
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Start launches Chromium and returns a runtime ready for use.
func Start(opts Options, logger *logging.Logger) (*Runtime, error) {
	opts.applyDefaults()

	h, err := startPlaywright(opts)
	if err != nil {
		return nil, err
	}
	return newRuntime(opts, h, logger), nil
}

func newRuntime(opts Options, h host, logger *logging.Logger) *Runtime {
	opts.applyDefaults()

	r := &Runtime{
		opts:     opts,
		host:     h,
		logger:   logger,
		nextUID:  1,
		surfaces: make(map[runtime.UID]surface),
		jobs:     runtime.NewQueue[func()](),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.work()
	return r
}

// RegisterCallback installs the delivery target.
func (r *Runtime) RegisterCallback(fn func(runtime.Command)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callback = fn
}

// SpawnOverlay opens a page in the background. The direct result is always
// zero; the handle arrives with the spawn completion.
func (r *Runtime) SpawnOverlay(opts runtime.SpawnOptions) runtime.UID {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = r.opts.DefaultWidth
	}
	if height == 0 {
		height = r.opts.DefaultHeight
	}

	r.enqueue(func() {
		s, err := r.host.Open(width, height)
		if err != nil {
			r.logger.Errorf("spawn %q failed: %v", opts.Name, err)
			r.deliver(runtime.Notification{Kind: runtime.KindFeedback, Message: fmt.Sprintf("spawn failed: %v", err)})
			return
		}

		r.mu.Lock()
		uid := r.nextUID
		r.nextUID++
		r.surfaces[uid] = s
		r.mu.Unlock()

		r.logger.Infof("opened page for %s (%dx%d)", uid, width, height)
		r.deliver(runtime.EventResponse{Kind: runtime.KindFinishSpawnOverlay, UID: uid})
	})
	return 0
}

// CloseOverlay closes the page behind uid in the background.
func (r *Runtime) CloseOverlay(uid runtime.UID) {
	r.enqueue(func() {
		r.mu.Lock()
		s, ok := r.surfaces[uid]
		delete(r.surfaces, uid)
		r.mu.Unlock()

		if !ok {
			r.deliver(runtime.Notification{Kind: runtime.KindFeedback, Message: fmt.Sprintf("no overlay %s", uid)})
			return
		}

		if err := s.Close(); err != nil {
			// The page is gone either way; report the close so the row clears.
			r.logger.Warnf("closing page for %s: %v", uid, err)
		}
		r.deliver(runtime.EventResponse{Kind: runtime.KindFinishCloseOverlay, UID: uid})
	})
}

// SetContentsWebsite resizes the page behind uid and navigates it.
func (r *Runtime) SetContentsWebsite(uid runtime.UID, contents runtime.WebContents) {
	r.enqueue(func() {
		r.mu.Lock()
		s, ok := r.surfaces[uid]
		r.mu.Unlock()

		if !ok {
			r.deliver(runtime.Notification{Kind: runtime.KindFeedback, Message: fmt.Sprintf("no overlay %s", uid)})
			return
		}

		if contents.Width > 0 && contents.Height > 0 {
			if err := s.Resize(contents.Width, contents.Height); err != nil {
				r.logger.Warnf("resizing %s: %v", uid, err)
			}
		}
		if err := s.Navigate(contents.URL); err != nil {
			r.logger.Errorf("navigating %s to %s: %v", uid, contents.URL, err)
			r.deliver(runtime.Notification{Kind: runtime.KindFeedback, Message: fmt.Sprintf("navigation failed: %v", err)})
			return
		}
		r.deliver(runtime.Event{Kind: runtime.KindOverlayChanged, UID: uid})
	})
}

// Close closes every page and stops the browser.
func (r *Runtime) Close() error {
	var err error
	r.stopOnce.Do(func() {
		close(r.stop)
		<-r.done

		r.mu.Lock()
		for uid, s := range r.surfaces {
			_ = s.Close()
			delete(r.surfaces, uid)
		}
		r.mu.Unlock()

		err = r.host.Shutdown()
	})
	return err
}

func (r *Runtime) enqueue(job func()) {
	select {
	case <-r.stop:
		r.logger.Warnf("runtime stopped, request dropped")
	default:
		r.jobs.Push(job)
	}
}

func (r *Runtime) work() {
	defer close(r.done)
	for {
		select {
		case <-r.stop:
			return
		case <-r.jobs.Ready():
			for {
				select {
				case <-r.stop:
					return
				default:
				}
				job, ok := r.jobs.Pop()
				if !ok {
					break
				}
				job()
			}
		}
	}
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
