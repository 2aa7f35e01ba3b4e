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
	"sync"
	"time"

	"github.com/nabbar/gsk/bodyframing"
	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/hook"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
)

// outState tracks the shared, single-occupancy bottleneck of response
// body writing: only one response may be mid-body at a time, matching
// httpclient's sendState for uploads.
type outState uint8

const (
	outIdle outState = iota
	outSendingBody
)

// requestEntry is one pipelined request, from the moment its headers
// finish parsing through the moment its response has been fully written.
type requestEntry struct {
	sr      ServedRequest
	decoder *bodyframing.Decoder
	post    *postStream
	recvAt  time.Time

	resp    *httpheader.Response
	content stream.Stream
	ready   bool
}

type server struct {
	mu   sync.Mutex
	loop eventloop.Loop
	conn stream.Stream
	cfg  Config

	queue   []*requestEntry
	nextIdx int // cursor: entries returned by Next so far
	sendIdx int // cursor: responses fully written so far

	hasAvailable bool
	hasRequest   hook.Hook

	outState outState
	closed   bool

	inBuf    buffer.Buffer
	curEntry *requestEntry // request currently mid-body, awaiting more bytes

	idleTimer eventloop.Source
}

func newServer(loop eventloop.Loop, conn stream.Stream, cfg Config) *server {
	s := &server{
		loop:       loop,
		conn:       conn,
		cfg:        cfg,
		hasRequest: hook.New(),
		inBuf:      buffer.New(),
	}

	_ = conn.ReadHook().Trap(
		func(interface{}) { s.onReadable() },
		func(interface{}) { s.onReadShutdown() },
		nil, nil,
	)
	s.onReadable()

	return s
}

func (s *server) HasRequestHook() hook.Hook { return s.hasRequest }

func (s *server) Next() (*ServedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextIdx >= len(s.queue) {
		return nil, false
	}
	e := s.queue[s.nextIdx]
	s.nextIdx++
	s.hasAvailable = len(s.queue) > s.nextIdx
	return &e.sr, true
}

func (s *server) Respond(sr *ServedRequest, resp *httpheader.Response, content stream.Stream) error {
	s.mu.Lock()
	var e *requestEntry
	for _, cand := range s.queue {
		if &cand.sr == sr {
			e = cand
			break
		}
	}
	if e == nil {
		s.mu.Unlock()
		return ErrUnknownRequest
	}
	if e.ready {
		s.mu.Unlock()
		return ErrAlreadyResponded
	}
	e.resp = resp
	e.content = content
	e.ready = true
	s.mu.Unlock()

	if resp != nil {
		observeResponseSent(resp.StatusCode, time.Since(e.recvAt))
	}

	s.cancelIdleTimer()
	s.loop.Post(s.trySendNext)
	return nil
}

// pushEntry queues a newly header-parsed request and notifies
// HasRequestHook on a none-available to some-available transition.
func (s *server) pushEntry(e *requestEntry) {
	s.mu.Lock()
	s.queue = append(s.queue, e)
	wasAvail := s.hasAvailable
	s.hasAvailable = len(s.queue) > s.nextIdx
	nowAvail := s.hasAvailable
	s.mu.Unlock()

	if nowAvail && !wasAvail {
		s.hasRequest.Notify()
	}
}

// failAll tears the connection down on a malformed request or a write
// error, and errors out any request whose POST body was still streaming.
func (s *server) failAll(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cur := s.curEntry
	s.curEntry = nil
	s.mu.Unlock()

	s.cancelIdleTimer()
	if cur != nil {
		cur.post.setErrored(err)
	}
	_ = s.conn.ShutdownWrite()
	_ = s.conn.ShutdownRead()
}
