package urltransfer

import (
	"time"

	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
	"github.com/nabbar/gsk/urlmodel"
)

// Result is the outcome reported to Config.Done exactly once.
type Result int

const (
	Success Result = iota
	Redirect
	RedirectLoop
	NotFound
	ServerError
	Unsupported
	TimedOut
	Cancelled
	BadRequest
	BadName
	NoServer
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Redirect:
		return "redirect"
	case RedirectLoop:
		return "redirect-loop"
	case NotFound:
		return "not-found"
	case ServerError:
		return "server-error"
	case Unsupported:
		return "unsupported"
	case TimedOut:
		return "timed-out"
	case Cancelled:
		return "cancelled"
	case BadRequest:
		return "bad-request"
	case BadName:
		return "bad-name"
	case NoServer:
		return "no-server"
	default:
		return "unknown"
	}
}

// State is the transfer's lifecycle position.
type State int

const (
	Constructing State = iota
	Started
	Done
)

// DoneFunc is invoked exactly once when the transfer reaches Done.
type DoneFunc func(result Result, content stream.Stream, err error)

// UploadFactory produces the request body. It must be safely callable
// once per attempt (the initial try plus one per followed redirect);
// NewOneshotUpload and NewPacketUpload build the two standard shapes.
type UploadFactory func() (body stream.Stream, size int64, knownSize bool, err error)

// RequestModifier mutates an outgoing request immediately before
// dispatch, e.g. to set User-Agent, add headers, or rewrite the URI into
// proxy-absolute form.
type RequestModifier func(req *httpheader.Request)

// Config configures a Transfer before Start is called.
type Config struct {
	// Loop drives the stream built by whichever Backend this URL's
	// scheme resolves to.
	Loop            eventloop.Loop
	Timeout         time.Duration
	FollowRedirects bool
	// AddressHint, if set, is used verbatim as the network address
	// instead of resolving the URL's host (proxying).
	AddressHint string
	Upload      UploadFactory
	Modifiers   []RequestModifier
	Done        DoneFunc
}

// Backend runs one scheme's protocol exchange for a Transfer. A Transfer
// owns at most one live Backend at a time; a redirect tears down the old
// one and constructs a fresh Backend for the new URL's scheme.
type Backend interface {
	// Start begins the protocol exchange. The backend must eventually
	// call exactly one of Transfer.complete or Transfer.redirect, unless
	// Cancel is called first.
	Start(t *Transfer) error
	// Cancel shuts down any resolver lookup or transport the backend
	// owns. Safe to call after completion.
	Cancel()
}

// BackendFactory constructs a Backend for a resolved URL and transfer
// configuration.
type BackendFactory func(u *urlmodel.URL, cfg *Config) (Backend, error)
