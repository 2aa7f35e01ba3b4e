package urltransfer

import (
	"fmt"
	"sync"
	"time"

	"github.com/nabbar/gsk/stream"
	"github.com/nabbar/gsk/urlmodel"
)

// Transfer drives a single URL fetch through Constructing, Started and
// Done, following redirects and detecting redirect loops along the way.
type Transfer struct {
	mu    sync.Mutex
	cfg   Config
	state State

	original *urlmodel.URL
	current  *urlmodel.URL
	chain    []*urlmodel.URL

	backend      Backend
	timeoutTimer *time.Timer
	done         bool
}

// New constructs a Transfer in the Constructing state. cfg is copied; its
// Modifiers slice is not.
func New(u *urlmodel.URL, cfg Config) *Transfer {
	return &Transfer{
		cfg:      cfg,
		original: u,
		current:  u,
		chain:    []*urlmodel.URL{u},
		state:    Constructing,
	}
}

// State reports the transfer's current lifecycle position.
func (t *Transfer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// URL reports the URL currently being fetched (the original, or the most
// recently followed redirect target).
func (t *Transfer) URL() *urlmodel.URL {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Start selects the backend for the current URL's scheme and begins the
// protocol exchange. It is an error to call Start more than once.
func (t *Transfer) Start() error {
	t.mu.Lock()
	if t.state != Constructing {
		t.mu.Unlock()
		return fmt.Errorf("urltransfer: Start called in state %d", t.state)
	}
	t.state = Started
	if t.cfg.Timeout > 0 {
		t.timeoutTimer = time.AfterFunc(t.cfg.Timeout, t.onTimeout)
	}
	t.mu.Unlock()

	return t.dispatch(t.current)
}

func (t *Transfer) dispatch(u *urlmodel.URL) error {
	factory, err := lookupBackend(u.Scheme)
	if err != nil {
		t.complete(Unsupported, nil, err)
		return err
	}

	backend, err := factory(u, &t.cfg)
	if err != nil {
		t.complete(BadRequest, nil, err)
		return err
	}

	t.mu.Lock()
	t.backend = backend
	t.mu.Unlock()

	return backend.Start(t)
}

func (t *Transfer) onTimeout() {
	t.mu.Lock()
	backend := t.backend
	t.mu.Unlock()
	if backend != nil {
		backend.Cancel()
	}
	t.complete(TimedOut, nil, fmt.Errorf("urltransfer: timed out after %s", t.cfg.Timeout))
}

// Cancel tears down the active backend and, if the transfer has not
// already finished, reports Cancelled. Safe to call more than once.
func (t *Transfer) Cancel() {
	t.mu.Lock()
	backend := t.backend
	t.mu.Unlock()
	if backend != nil {
		backend.Cancel()
	}
	t.complete(Cancelled, nil, nil)
}

// redirect is called by the active Backend when it observes a redirect
// response. location is resolved against the current URL. If follow
// redirects is enabled and no loop is detected, a new Backend is started
// for the resolved target; otherwise Redirect is reported.
func (t *Transfer) redirect(location string) {
	t.mu.Lock()
	current := t.current
	follow := t.cfg.FollowRedirects
	chain := t.chain
	t.mu.Unlock()

	target, err := current.Resolve(location)
	if err != nil {
		t.complete(BadRequest, nil, err)
		return
	}

	if !follow {
		t.mu.Lock()
		t.current = target
		t.mu.Unlock()
		t.complete(Redirect, nil, nil)
		return
	}

	for _, prior := range chain {
		if sameTarget(prior, target) {
			t.complete(RedirectLoop, nil, fmt.Errorf("urltransfer: redirect loop at %s", target.String()))
			return
		}
	}

	t.mu.Lock()
	t.current = target
	t.chain = append(t.chain, target)
	t.mu.Unlock()

	if err := t.dispatch(target); err != nil {
		return
	}
}

// sameTarget compares two URLs up to (not including) their fragment, as
// the fragment has no bearing on which resource is fetched.
func sameTarget(a, b *urlmodel.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host && a.Port == b.Port &&
		a.Path == b.Path && a.Query == b.Query
}

// complete finalizes the transfer exactly once: it cancels the timeout
// timer and invokes the configured Done callback.
func (t *Transfer) complete(result Result, content stream.Stream, err error) {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	t.state = Done
	timer := t.timeoutTimer
	done := t.cfg.Done
	t.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	if done != nil {
		done(result, content, err)
	}
}

// Redirect is the exported entry point backends use to report a redirect
// response carrying the given Location value.
func (t *Transfer) Redirect(location string) { t.redirect(location) }

// Complete is the exported entry point backends use to report a terminal
// result, optionally with the downloaded content stream.
func (t *Transfer) Complete(result Result, content stream.Stream, err error) {
	t.complete(result, content, err)
}

// Modifiers returns the request modifiers configured for this transfer,
// in registration order.
func (t *Transfer) Modifiers() []RequestModifier {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg.Modifiers
}

// Upload returns the configured upload factory, or nil if this transfer
// has no request body.
func (t *Transfer) Upload() UploadFactory {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg.Upload
}

// AddressHint returns the proxy address override, if any.
func (t *Transfer) AddressHint() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg.AddressHint
}
