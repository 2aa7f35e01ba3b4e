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
	"time"

	"github.com/nabbar/gsk/bodyframing"
	"github.com/nabbar/gsk/httpheader"
)

func (s *server) onReadable() {
	s.cancelIdleTimer()
	s.tryParseRequests()
}

func (s *server) onReadShutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.tryParseRequests()

	s.mu.Lock()
	cur := s.curEntry
	s.curEntry = nil
	s.mu.Unlock()

	s.cancelIdleTimer()
	if cur != nil && !cur.decoder.Done() {
		cur.post.setErrored(ErrConnectionClosed)
	}
}

// tryParseRequests drains as many pipelined requests out of inBuf as are
// currently complete: first the header block (request line plus
// fields — states Init/ReadingFirstLine/ReadingHeaders collapse into one
// step here, since ExtractHeaderBlock only resolves once the whole block
// has arrived), then, for a request carrying a body, as much of the body
// (state ReadingPost) as is buffered. A request is pushed and exposed via
// HasRequestHook the moment its headers are known, whether or not its
// body (if any) has finished arriving.
func (s *server) tryParseRequests() {
	for {
		s.mu.Lock()
		cur := s.curEntry
		paused := cur != nil && cur.post.size() >= s.cfg.PostBufferThreshold
		s.mu.Unlock()

		// Backpressure: once the current POST body's buffer is at or
		// above threshold, stop pulling more bytes off the transport
		// until the consumer drains it back down (see setDrainWaiter
		// below); bytes simply accumulate inside conn in the meantime.
		if !paused {
			for {
				if _, err := s.conn.RawReadBuffer(s.inBuf); err != nil {
					break
				}
			}
		}

		if cur != nil {
			done, size, err := cur.post.feed(s.inBuf, cur.decoder, s.closed)
			if err != nil {
				s.failAll(err)
				return
			}
			if done {
				cur.post.markComplete()
				s.mu.Lock()
				s.curEntry = nil
				s.mu.Unlock()
				continue
			}
			if size >= s.cfg.PostBufferThreshold {
				cur.post.setDrainWaiter(func() {
					s.loop.Post(s.tryParseRequests)
				})
				return
			}
			return
		}

		s.mu.Lock()
		atCapacity := len(s.queue)-s.sendIdx >= s.cfg.MaxQueueDepth
		s.mu.Unlock()
		if atCapacity {
			return
		}

		raw, ok := bodyframing.ExtractHeaderBlock(s.inBuf)
		if !ok {
			s.maybeArmIdleTimer()
			return
		}

		req, err := httpheader.ParseRequest(raw, httpheader.ParseOptions{})
		if err != nil {
			s.failAll(err)
			return
		}

		mode, length := bodyframing.Detect(&req.Header)
		hasBody := req.ContentLength > 0 || mode == bodyframing.Chunked

		observeRequestReceived(string(req.Verb))

		e := &requestEntry{sr: ServedRequest{Req: req}, recvAt: time.Now()}
		if hasBody {
			post := newPostStream(s.cfg.PostBufferThreshold)
			e.post = post
			e.sr.Body = post
			e.decoder = bodyframing.NewDecoder(mode, length)
			s.mu.Lock()
			s.curEntry = e
			s.mu.Unlock()
		}
		s.pushEntry(e)
	}
}
