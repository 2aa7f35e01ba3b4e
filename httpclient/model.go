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
	"io"
	"sync"
	"time"

	"github.com/nabbar/gsk/bodyframing"
	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/hook"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
)

// sendState tracks the shared, single-occupancy bottleneck of request-body
// upload: per spec, only one request may occupy SendingBody at a time,
// even though pipelining otherwise lets later requests' headers go out
// before earlier responses return.
type sendState uint8

const (
	sendIdle sendState = iota
	sendSendingBody
)

type pendingRequest struct {
	req    *httpheader.Request
	upload stream.Stream
	cb     FuncResponse
	sentAt time.Time
}

type client struct {
	mu   sync.Mutex
	loop eventloop.Loop
	conn stream.Stream
	cfg  Config

	queue   []*pendingRequest
	sendIdx int
	recvIdx int

	sendState sendState
	accepting bool

	requestable hook.Hook

	shutdownWhenDone bool
	closed           bool

	inBuf      buffer.Buffer
	curDecoder *bodyframing.Decoder
	curBodyBuf buffer.Buffer
	curResp    *httpheader.Response
}

func newClient(loop eventloop.Loop, conn stream.Stream, cfg Config) *client {
	c := &client{
		loop:        loop,
		conn:        conn,
		cfg:         cfg,
		accepting:   true,
		requestable: hook.New(),
		inBuf:       buffer.New(),
	}

	_ = conn.ReadHook().Trap(
		func(interface{}) { c.onReadable() },
		func(interface{}) { c.onReadShutdown() },
		nil, nil,
	)
	c.onReadable()

	return c
}

func (c *client) RequestableHook() hook.Hook { return c.requestable }

func (c *client) ShutdownWhenDone() {
	c.mu.Lock()
	c.shutdownWhenDone = true
	drained := c.recvIdx >= len(c.queue)
	c.mu.Unlock()

	if drained {
		_ = c.conn.ShutdownWrite()
		_ = c.conn.ShutdownRead()
	}
}

func (c *client) Do(req *httpheader.Request, upload stream.Stream, cb FuncResponse) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnectionClosed
	}
	if len(c.queue)-c.recvIdx >= c.cfg.MaxPipelineDepth {
		c.mu.Unlock()
		return ErrQueueFull
	}
	c.queue = append(c.queue, &pendingRequest{req: req, upload: upload, cb: cb, sentAt: time.Now()})
	c.mu.Unlock()
	observeRequestSent(string(req.Verb))
	c.refreshRequestable()

	c.loop.Post(func() {
		c.trySendNext()
		c.tryParseResponses()
	})
	return nil
}

func (c *client) refreshRequestable() {
	c.mu.Lock()
	outstanding := len(c.queue) - c.recvIdx
	wasAccepting := c.accepting
	c.accepting = outstanding < c.cfg.MaxPipelineDepth
	nowAccepting := c.accepting
	c.mu.Unlock()

	if nowAccepting && !wasAccepting {
		c.requestable.Notify()
	}
}

// trySendNext writes out queued request headers (and, for a request
// carrying an upload body, pumps that body) until either the queue is
// drained or the current request's body is still producing bytes.
func (c *client) trySendNext() {
	for {
		c.mu.Lock()
		if c.closed || c.sendState == sendSendingBody || c.sendIdx >= len(c.queue) {
			c.mu.Unlock()
			return
		}
		pr := c.queue[c.sendIdx]
		c.mu.Unlock()

		tmp := buffer.New()
		httpheader.WriteRequest(tmp, pr.req)
		if _, err := c.conn.RawWriteBuffer(tmp); err != nil {
			c.failAll(err)
			return
		}

		if pr.upload == nil {
			c.mu.Lock()
			c.sendIdx++
			c.mu.Unlock()
			continue
		}

		c.sendState = sendSendingBody
		c.beginUploadPump(pr)
		return
	}
}

func (c *client) beginUploadPump(pr *pendingRequest) {
	tmp := buffer.New()

	finish := func() {
		pr.upload.ReadHook().Untrap()
		c.mu.Lock()
		c.sendIdx++
		c.mu.Unlock()
		c.sendState = sendIdle
		c.trySendNext()
	}

	pump := func(interface{}) {
		for {
			n, err := pr.upload.RawReadBuffer(tmp)
			if n > 0 {
				if _, werr := c.conn.RawWriteBuffer(tmp); werr != nil {
					c.failAll(werr)
					return
				}
			}
			switch err {
			case stream.ErrWouldBlock:
				return
			case io.EOF:
				finish()
				return
			case nil:
				continue
			default:
				c.failAll(err)
				return
			}
		}
	}

	_ = pr.upload.ReadHook().Trap(pump, func(interface{}) { finish() }, nil, nil)
	pump(nil)
}

// failAll tears the connection down and reports every outstanding request
// with err, per the "connection close drains the queue with an error"
// rule.
func (c *client) failAll(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	var leftover []*pendingRequest
	for i := c.recvIdx; i < len(c.queue); i++ {
		leftover = append(leftover, c.queue[i])
	}
	c.recvIdx = len(c.queue)
	c.mu.Unlock()

	_ = c.conn.ShutdownWrite()
	_ = c.conn.ShutdownRead()

	for _, pr := range leftover {
		pr.cb(nil, nil, err)
	}
}
