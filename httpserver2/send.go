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
	"io"

	"github.com/nabbar/gsk/bodyframing"
	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
)

// trySendNext writes out responses strictly in request arrival order:
// the head-of-line entry must be ready (Respond already called for it)
// before anything behind it can go out, even if a later request was
// answered first.
func (s *server) trySendNext() {
	for {
		s.mu.Lock()
		if s.closed || s.outState == outSendingBody || s.sendIdx >= len(s.queue) {
			s.mu.Unlock()
			return
		}
		e := s.queue[s.sendIdx]
		ready := e.ready
		s.mu.Unlock()
		if !ready {
			return
		}

		tmp := buffer.New()
		httpheader.WriteResponse(tmp, e.resp)
		if _, err := s.conn.RawWriteBuffer(tmp); err != nil {
			s.failAll(err)
			return
		}

		wantClose := e.resp.Connection == httpheader.Close

		if e.content == nil {
			s.advanceSend(wantClose)
			continue
		}

		s.mu.Lock()
		s.outState = outSendingBody
		s.mu.Unlock()
		s.beginContentPump(e, wantClose)
		return
	}
}

// beginContentPump writes e.content out per the framing resp.Header
// selects: chunked entity-bodies are wrapped chunk-by-chunk via
// bodyframing.EncodeChunk, while Content-Length/until-close bodies are
// forwarded as raw bytes.
func (s *server) beginContentPump(e *requestEntry, wantClose bool) {
	mode, _ := bodyframing.Detect(&e.resp.Header)
	chunk := make([]byte, 4096)

	finish := func() {
		if mode == bodyframing.Chunked {
			term := buffer.New()
			bodyframing.EncodeChunk(term, nil)
			_, _ = s.conn.RawWriteBuffer(term)
		}
		e.content.ReadHook().Untrap()
		s.advanceSend(wantClose)
	}

	pump := func(interface{}) {
		for {
			n, err := e.content.RawRead(chunk)
			if n > 0 {
				data := chunk[:n]
				var werr error
				if mode == bodyframing.Chunked {
					framed := buffer.New()
					bodyframing.EncodeChunk(framed, data)
					_, werr = s.conn.RawWriteBuffer(framed)
				} else {
					_, werr = s.conn.RawWrite(data)
				}
				if werr != nil {
					s.failAll(werr)
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
				s.failAll(err)
				return
			}
		}
	}

	_ = e.content.ReadHook().Trap(pump, func(interface{}) { finish() }, nil, nil)
	pump(nil)
}

// advanceSend moves past the just-completed response, applies a
// Connection: close response by shutting the transport's write half
// (and the read half too, once every queued response has gone out), and
// continues the send queue.
func (s *server) advanceSend(wantClose bool) {
	s.mu.Lock()
	s.sendIdx++
	s.outState = outIdle
	drained := s.sendIdx >= len(s.queue)
	s.mu.Unlock()

	if wantClose {
		_ = s.conn.ShutdownWrite()
		if drained {
			_ = s.conn.ShutdownRead()
		}
	}

	s.trySendNext()
	s.maybeArmIdleTimer()
}
