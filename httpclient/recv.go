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
	"time"

	"github.com/nabbar/gsk/bodyframing"
	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/memstream"
	"github.com/nabbar/gsk/stream"
)

func (c *client) onReadable() {
	for {
		_, err := c.conn.RawReadBuffer(c.inBuf)
		if err != nil {
			break
		}
	}
	c.tryParseResponses()
}

func (c *client) onReadShutdown() {
	c.tryParseResponses()
	c.finalizeClosed()
}

func (c *client) finalizeClosed() {
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

	for _, pr := range leftover {
		pr.cb(nil, nil, ErrConnectionClosed)
	}
}

// tryParseResponses drains as many complete responses as inBuf currently
// holds, matching each to the oldest still-unanswered request (FIFO).
func (c *client) tryParseResponses() {
	for {
		c.mu.Lock()
		if c.recvIdx >= len(c.queue) {
			c.mu.Unlock()
			return
		}
		pr := c.queue[c.recvIdx]
		c.mu.Unlock()

		if c.curDecoder == nil {
			raw, ok := bodyframing.ExtractHeaderBlock(c.inBuf)
			if !ok {
				return
			}
			resp, err := httpheader.ParseResponse(raw, httpheader.ParseOptions{})
			if err != nil {
				c.completeOne(pr, nil, nil, err)
				continue
			}
			if !resp.HasBody(pr.req.Verb) {
				c.completeOne(pr, resp, memstream.NewBufferSource(buffer.New()), nil)
				continue
			}
			mode, length := bodyframing.Detect(&resp.Header)
			c.curDecoder = bodyframing.NewDecoder(mode, length)
			c.curBodyBuf = buffer.New()
			c.curResp = resp
		}

		done, err := c.curDecoder.Feed(c.inBuf, c.curBodyBuf, c.closed)
		if err != nil {
			resp := c.curResp
			c.curDecoder, c.curBodyBuf, c.curResp = nil, nil, nil
			c.completeOne(pr, resp, nil, err)
			continue
		}
		if !done {
			return
		}

		resp, body := c.curResp, memstream.NewBufferSource(c.curBodyBuf)
		c.curDecoder, c.curBodyBuf, c.curResp = nil, nil, nil
		c.completeOne(pr, resp, body, nil)
	}
}

func (c *client) completeOne(pr *pendingRequest, resp *httpheader.Response, body stream.Stream, err error) {
	c.mu.Lock()
	c.recvIdx++
	drained := c.recvIdx >= len(c.queue)
	shutdown := c.shutdownWhenDone
	c.mu.Unlock()

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	observeResponseReceived(string(pr.req.Verb), status, time.Since(pr.sentAt), err)

	c.refreshRequestable()
	pr.cb(resp, body, err)

	if shutdown && drained {
		_ = c.conn.ShutdownWrite()
		_ = c.conn.ShutdownRead()
	}
}
