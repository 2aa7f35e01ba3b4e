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

// maybeArmIdleTimer starts the keepalive idle timer once the response
// queue has drained and no request is mid-parse. Any subsequent activity
// (onReadable, Respond) cancels it via cancelIdleTimer before it can fire
// spuriously.
func (s *server) maybeArmIdleTimer() {
	if s.cfg.IdleTimeout <= 0 {
		return
	}

	s.mu.Lock()
	idle := s.sendIdx >= len(s.queue) && s.curEntry == nil && s.inBuf.Size() == 0 && !s.closed
	already := s.idleTimer != nil
	s.mu.Unlock()
	if !idle || already {
		return
	}

	timer := s.loop.AddTimer(s.cfg.IdleTimeout, false, func() {
		s.mu.Lock()
		s.idleTimer = nil
		s.mu.Unlock()
		_ = s.conn.ShutdownWrite()
		_ = s.conn.ShutdownRead()
	})

	s.mu.Lock()
	s.idleTimer = timer
	s.mu.Unlock()
}

func (s *server) cancelIdleTimer() {
	s.mu.Lock()
	t := s.idleTimer
	s.idleTimer = nil
	s.mu.Unlock()
	if t != nil {
		t.Cancel()
	}
}
