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

package stream

import (
	"io"
	"sync"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/hook"
)

const defaultChunkSize = 4096

func newNetStream(l eventloop.Loop, conn io.ReadWriteCloser, opts ...Option) *netStream {
	s := &netStream{
		loop:      l,
		conn:      conn,
		chunkSize: defaultChunkSize,
		readState: Ready,
		writeState: Ready,
		readHook:  hook.New(),
		writeHook: hook.New(),
		in:        buffer.New(),
	}
	for _, o := range opts {
		o(s)
	}
	go s.pumpRead()
	return s
}

// netStream is the Stream implementation wrapping an io.ReadWriteCloser.
type netStream struct {
	loop eventloop.Loop
	conn io.ReadWriteCloser

	chunkSize           int
	neverPartialWrites  bool

	mu         sync.Mutex
	readState  HalfState
	writeState HalfState
	err        error
	in         buffer.Buffer

	readHook  hook.Hook
	writeHook hook.Hook

	closeReadOnce  sync.Once
	closeWriteOnce sync.Once
}

func (s *netStream) IsReadable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readState == Ready && s.in.Size() > 0
}

func (s *netStream) IsWritable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeState == Ready
}

func (s *netStream) NeverBlocksRead() bool  { return true }
func (s *netStream) NeverBlocksWrite() bool { return false }
func (s *netStream) NeverPartialWrites() bool {
	return s.neverPartialWrites
}

func (s *netStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// pumpRead performs the blocking reads on a dedicated goroutine and hands
// finished chunks to the internal buffer, notifying the loop so the read
// hook fires on the loop's own dispatch goroutine.
func (s *netStream) pumpRead() {
	chunk := make([]byte, s.chunkSize)
	for {
		n, err := s.conn.Read(chunk)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, chunk[:n])
			s.mu.Lock()
			s.in.Append(cp)
			s.mu.Unlock()
			s.loop.Post(func() { s.readHook.Notify() })
		}
		if err != nil {
			if err == io.EOF {
				s.NotifyReadShutdown(nil)
			} else {
				s.NotifyReadShutdown(err)
			}
			return
		}
	}
}

func (s *netStream) RawRead(dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.in.Size() > 0 {
		n, _ := s.in.Read(dst)
		return n, nil
	}
	if s.readState == ShutDown {
		return 0, io.EOF
	}
	if s.readState == Errored {
		return 0, s.err
	}
	return 0, ErrWouldBlock
}

func (s *netStream) RawReadBuffer(out buffer.Buffer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.in.Size() > 0 {
		n := out.Transfer(s.in, s.in.Size())
		return n, nil
	}
	if s.readState == ShutDown {
		return 0, io.EOF
	}
	if s.readState == Errored {
		return 0, s.err
	}
	return 0, ErrWouldBlock
}

func (s *netStream) RawWrite(src []byte) (int, error) {
	s.mu.Lock()
	if s.writeState != Ready {
		err := s.err
		s.mu.Unlock()
		if err == nil {
			err = ErrShutdown
		}
		return 0, err
	}
	s.mu.Unlock()

	if !s.neverPartialWrites {
		return s.conn.Write(src)
	}

	total := 0
	for total < len(src) {
		n, err := s.conn.Write(src[total:])
		total += n
		if err != nil {
			s.failWrite(err)
			return total, err
		}
	}
	return total, nil
}

func (s *netStream) RawWriteBuffer(in buffer.Buffer) (int64, error) {
	var total int64
	chunk := make([]byte, s.chunkSize)
	for in.Size() > 0 {
		n, _ := in.Read(chunk)
		w, err := s.RawWrite(chunk[:n])
		total += int64(w)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *netStream) ReadHook() hook.Hook  { return s.readHook }
func (s *netStream) WriteHook() hook.Hook { return s.writeHook }

func (s *netStream) NotifyReadShutdown(err error) {
	s.mu.Lock()
	if s.readState == ShutDown || s.readState == Errored {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.readState = Errored
		s.err = err
	} else {
		s.readState = ShutDown
	}
	s.mu.Unlock()

	s.loop.Post(func() { s.readHook.NotifyShutdown() })
}

func (s *netStream) failWrite(err error) {
	s.mu.Lock()
	if s.writeState == Ready {
		s.writeState = Errored
		if s.err == nil {
			s.err = err
		}
	}
	s.mu.Unlock()
	s.loop.Post(func() { s.writeHook.NotifyShutdown() })
}

func (s *netStream) ShutdownRead() error {
	var err error
	s.closeReadOnce.Do(func() {
		s.mu.Lock()
		if s.readState != Errored {
			s.readState = ShutDown
		}
		closeBoth := s.writeState != Ready
		s.mu.Unlock()

		s.readHook.NotifyShutdown()
		if closeBoth {
			err = s.conn.Close()
		} else if c, ok := s.conn.(interface{ CloseRead() error }); ok {
			err = c.CloseRead()
		}
	})
	return err
}

func (s *netStream) ShutdownWrite() error {
	var err error
	s.closeWriteOnce.Do(func() {
		s.mu.Lock()
		if s.writeState != Errored {
			s.writeState = ShutDown
		}
		closeBoth := s.readState != Ready
		s.mu.Unlock()

		s.writeHook.NotifyShutdown()
		if closeBoth {
			err = s.conn.Close()
		} else if c, ok := s.conn.(interface{ CloseWrite() error }); ok {
			err = c.CloseWrite()
		}
	})
	return err
}
