/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package httpserver2

import (
	"errors"
	"time"

	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/hook"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
)

// ErrUnknownRequest is returned by Respond when sr did not come from this
// Server's Next.
var ErrUnknownRequest = errors.New("httpserver2: unknown request")

// ErrAlreadyResponded is returned by Respond when sr has already been
// answered.
var ErrAlreadyResponded = errors.New("httpserver2: request already responded to")

// ErrConnectionClosed marks a POST body stream that ended before its
// framing completed, because the transport closed underneath it.
var ErrConnectionClosed = errors.New("httpserver2: connection closed mid-request")

// ServedRequest pairs a parsed request with its optional POST body.
// Body is nil when the request carries no entity body; otherwise it is a
// live stream.Stream that yields decoded body bytes as they arrive,
// terminating in io.EOF once the framing (Content-Length or chunked)
// completes.
type ServedRequest struct {
	Req  *httpheader.Request
	Body stream.Stream
}

// Config tunes a Server's queuing, backpressure and idle behavior.
type Config struct {
	// MaxQueueDepth caps requests parsed-but-not-yet-responded-to. Zero
	// selects the default of 32.
	MaxQueueDepth int

	// PostBufferThreshold is the POST-stream buffering watermark, in
	// bytes, past which the server stops draining the transport until
	// the consumer reads the POST stream back down. Zero selects the
	// default of 8 KiB.
	PostBufferThreshold int64

	// IdleTimeout, if positive, shuts the transport down cleanly once
	// every queued request has been responded to and no partial request
	// is being received, for at least this long. Zero disables the
	// timer.
	IdleTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxQueueDepth <= 0 {
		c.MaxQueueDepth = 32
	}
	if c.PostBufferThreshold <= 0 {
		c.PostBufferThreshold = 8192
	}
	return c
}

// Server dequeues pipelined HTTP requests off one persistent transport.
type Server interface {
	// HasRequestHook fires whenever a request finishes header-parsing and
	// becomes available to Next.
	HasRequestHook() hook.Hook

	// Next dequeues the oldest request not yet returned by a prior Next
	// call. ok is false if none is currently available.
	Next() (*ServedRequest, bool)

	// Respond supplies the response for a request obtained from Next.
	// content, if non-nil, is written per resp's selected framing
	// (Content-Length or chunked, per bodyframing.Detect on resp's
	// header); responses are flushed to the transport strictly in
	// request arrival order regardless of the order Respond is called.
	Respond(sr *ServedRequest, resp *httpheader.Response, content stream.Stream) error
}

// New returns a Server dequeuing requests from conn, dispatched via loop.
func New(loop eventloop.Loop, conn stream.Stream, cfg Config) Server {
	return newServer(loop, conn, cfg.withDefaults())
}
