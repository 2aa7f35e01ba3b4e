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
	"io"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/stream"
)

// NewSlabSource wraps a non-owned byte span: the stream does not copy p
// at construction. RawRead copies bytes out of the remaining span;
// RawReadBuffer attaches the remaining span into out by reference (via
// buffer.Buffer.AppendForeign), so the span is only copied if and when a
// consumer's own buffer operation requires it. release, if non-nil, fires
// exactly once, after every byte of p has been consumed by some reader.
func NewSlabSource(p []byte, release buffer.ReleaseFunc) stream.Stream {
	s := &slabSource{base: newBase(), span: p, release: release}
	s.readState = stream.Ready
	if len(p) == 0 {
		s.readState = stream.ShutDown
		if release != nil {
			release()
			s.release = nil
		}
	}
	return s
}

type slabSource struct {
	base
	span    []byte
	off     int
	release buffer.ReleaseFunc
}

func (s *slabSource) remaining() []byte {
	return s.span[s.off:]
}

func (s *slabSource) consume(n int) {
	s.off += n
	if s.off >= len(s.span) {
		s.readState = stream.ShutDown
		if s.release != nil {
			s.release()
			s.release = nil
		}
	}
}

func (s *slabSource) RawRead(dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rem := s.remaining()
	if len(rem) == 0 {
		if s.readState == stream.Errored {
			return 0, s.err
		}
		return 0, io.EOF
	}
	n := copy(dst, rem)
	s.consume(n)
	return n, nil
}

func (s *slabSource) RawReadBuffer(out buffer.Buffer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rem := s.remaining()
	if len(rem) == 0 {
		if s.readState == stream.Errored {
			return 0, s.err
		}
		return 0, io.EOF
	}

	n := len(rem)
	release := s.release
	s.release = nil
	out.AppendForeign(rem, release)
	s.consume(n)
	return int64(n), nil
}

func (s *slabSource) RawWrite(src []byte) (int, error) {
	return 0, stream.ErrShutdown
}

func (s *slabSource) RawWriteBuffer(in buffer.Buffer) (int64, error) {
	return 0, stream.ErrShutdown
}
