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

package httpclient

import (
	"errors"

	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/hook"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
)

// ErrQueueFull is returned by Do when the pipeline has reached
// Config.MaxPipelineDepth outstanding requests.
var ErrQueueFull = errors.New("httpclient: pipeline queue full")

// ErrConnectionClosed is delivered to every still-queued callback when the
// transport closes before its response arrived.
var ErrConnectionClosed = errors.New("httpclient: connection closed with requests outstanding")

// FuncResponse receives a request's matched response: body is the
// decoded entity stream (already framed per Content-Length/chunked/
// until-close), or nil if err is non-nil or the response carries no body.
type FuncResponse func(resp *httpheader.Response, body stream.Stream, err error)

// Config tunes a Client's pipelining behavior.
type Config struct {
	// MaxPipelineDepth caps outstanding (sent-or-queued, unanswered)
	// requests. Zero selects the default of 32.
	MaxPipelineDepth int
}

func (c Config) withDefaults() Config {
	if c.MaxPipelineDepth <= 0 {
		c.MaxPipelineDepth = 32
	}
	return c
}

// Client is a pipelined HTTP client bound to one persistent transport.
type Client interface {
	// Do enqueues req. If upload is non-nil its bytes become the request
	// body; the caller is responsible for setting a correct
	// Content-Length or Transfer-Encoding: chunked on req beforehand. cb
	// fires exactly once, when the matching response is fully framed (or
	// the connection closes/errors first).
	Do(req *httpheader.Request, upload stream.Stream, cb FuncResponse) error

	// RequestableHook fires whenever the pipeline transitions between
	// accepting and rejecting new Do calls (crossing MaxPipelineDepth).
	RequestableHook() hook.Hook

	// ShutdownWhenDone arranges for the transport to be closed once every
	// queued request has been answered.
	ShutdownWhenDone()
}

// New returns a Client driving conn, dispatched via loop.
func New(loop eventloop.Loop, conn stream.Stream, cfg Config) Client {
	return newClient(loop, conn, cfg.withDefaults())
}
