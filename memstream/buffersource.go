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

// NewBufferSource drains src into an internally owned buffer at
// construction and exposes it for reading. src is left empty. Reads
// return io.EOF once the internal buffer is exhausted.
func NewBufferSource(src buffer.Buffer) stream.Stream {
	s := &bufferSource{base: newBase(), data: buffer.New()}
	s.readState = stream.Ready
	if src != nil {
		s.data.Drain(src)
	}
	return s
}

type bufferSource struct {
	base
	data buffer.Buffer
}

func (s *bufferSource) RawRead(dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Size() == 0 {
		return s.finishRead()
	}
	n, _ := s.data.Read(dst)
	if s.data.Size() == 0 {
		s.readState = stream.ShutDown
	}
	return n, nil
}

func (s *bufferSource) RawReadBuffer(out buffer.Buffer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Size() == 0 {
		n, err := s.finishRead()
		return int64(n), err
	}
	n := out.Transfer(s.data, s.data.Size())
	if s.data.Size() == 0 {
		s.readState = stream.ShutDown
	}
	return n, nil
}

// finishRead must be called with mu held.
func (s *bufferSource) finishRead() (int, error) {
	if s.readState == stream.Errored {
		return 0, s.err
	}
	return 0, io.EOF
}

func (s *bufferSource) RawWrite(src []byte) (int, error) {
	return 0, stream.ErrShutdown
}

func (s *bufferSource) RawWriteBuffer(in buffer.Buffer) (int64, error) {
	return 0, stream.ErrShutdown
}
