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

package memstream

import (
	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/stream"
)

// FuncFinal receives the sink's accumulated contents exactly once, when
// its write half is shut down. The buffer handed to it is the sink's
// actual internal buffer; the sink drains its own reference immediately
// after the callback returns.
type FuncFinal func(final buffer.Buffer)

// NewBufferSink returns a write-only stream.Stream that appends every
// write into an internal buffer. On ShutdownWrite, onFinal (if non-nil)
// is invoked once with the accumulated buffer, which is then drained.
func NewBufferSink(onFinal FuncFinal) stream.Stream {
	s := &bufferSink{base: newBase(), data: buffer.New(), onFinal: onFinal}
	s.writeState = stream.Ready
	return s
}

type bufferSink struct {
	base
	data    buffer.Buffer
	onFinal FuncFinal
}

func (s *bufferSink) RawWrite(src []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeState != stream.Ready {
		if s.err != nil {
			return 0, s.err
		}
		return 0, stream.ErrShutdown
	}
	s.data.Append(src)
	return len(src), nil
}

func (s *bufferSink) RawWriteBuffer(in buffer.Buffer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeState != stream.Ready {
		if s.err != nil {
			return 0, s.err
		}
		return 0, stream.ErrShutdown
	}
	n := s.data.Transfer(in, in.Size())
	return n, nil
}

func (s *bufferSink) RawRead(dst []byte) (int, error) {
	return 0, stream.ErrShutdown
}

func (s *bufferSink) RawReadBuffer(out buffer.Buffer) (int64, error) {
	return 0, stream.ErrShutdown
}

// ShutdownWrite overrides base to run the final callback exactly once
// before draining the accumulated buffer.
func (s *bufferSink) ShutdownWrite() error {
	s.closeWriteOnce.Do(func() {
		s.mu.Lock()
		if s.writeState != stream.Errored {
			s.writeState = stream.ShutDown
		}
		final := s.onFinal
		data := s.data
		s.mu.Unlock()

		if final != nil {
			final(data)
		}
		data.Destruct()

		s.writeHook.NotifyShutdown()
	})
	return nil
}
