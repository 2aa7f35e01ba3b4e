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
	"errors"
	"io"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/hook"
)

// HalfState is the state of one direction (read or write) of a Stream.
type HalfState uint8

const (
	NotAvailable HalfState = iota
	Ready
	ShutDown
	Errored
)

func (s HalfState) String() string {
	switch s {
	case NotAvailable:
		return "not-available"
	case Ready:
		return "ready"
	case ShutDown:
		return "shut-down"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// ErrWouldBlock is returned by RawRead/RawReadBuffer when no data is
// currently buffered and the read half has not reached EOF.
var ErrWouldBlock = errors.New("stream: would block")

// ErrShutdown is returned by RawWrite/RawWriteBuffer once the write half
// has been shut down.
var ErrShutdown = errors.New("stream: shut down")

// Stream is a polymorphic endpoint with independent read and write
// halves. Every transport (socket) and in-memory source/sink in this
// module implements it.
type Stream interface {
	// IsReadable reports whether the read half can currently yield data.
	IsReadable() bool
	// IsWritable reports whether the write half currently accepts data.
	IsWritable() bool

	// NeverBlocksRead reports whether RawRead/RawReadBuffer never block
	// the calling goroutine (true for every stream in this package: reads
	// are served from an internally buffered chunk).
	NeverBlocksRead() bool
	// NeverBlocksWrite reports whether RawWrite/RawWriteBuffer never
	// block the calling goroutine.
	NeverBlocksWrite() bool
	// NeverPartialWrites reports whether RawWrite delivers the whole
	// slice or an error, never a short write.
	NeverPartialWrites() bool

	// Err returns the terminal error, if either half has entered Errored.
	Err() error

	// RawRead copies buffered bytes into dst, returning ErrWouldBlock if
	// none are available yet and EOF has not been reached.
	RawRead(dst []byte) (int, error)
	// RawReadBuffer moves buffered bytes into out without copying them
	// (see buffer.Buffer.Transfer), returning ErrWouldBlock under the
	// same condition as RawRead.
	RawReadBuffer(out buffer.Buffer) (int64, error)

	// RawWrite writes src to the underlying connection. If
	// NeverPartialWrites is set it loops internally until all of src is
	// written or an error occurs.
	RawWrite(src []byte) (int, error)
	// RawWriteBuffer drains in and writes it via RawWrite.
	RawWriteBuffer(in buffer.Buffer) (int64, error)

	// ReadHook fires whenever the read half transitions to readable.
	ReadHook() hook.Hook
	// WriteHook fires whenever the write half transitions to writable.
	WriteHook() hook.Hook

	// NotifyReadShutdown unconditionally transitions the read half to
	// ShutDown (err == nil) or Errored (err != nil), firing the read
	// hook's shutdown notification. Used internally on EOF/read error;
	// exported so memory sources can signal synthetic EOF.
	NotifyReadShutdown(err error)

	// ShutdownRead cancels the read half. Idempotent, safe on an errored
	// stream.
	ShutdownRead() error
	// ShutdownWrite cancels the write half. Idempotent, safe on an
	// errored stream.
	ShutdownWrite() error
}

// New wraps conn (typically a net.Conn) as a Stream driven by l: a
// background goroutine performs blocking reads and hands chunks to the
// stream's internal buffer, notifying l whenever new data, EOF, or a read
// error arrives.
func New(l eventloop.Loop, conn io.ReadWriteCloser, opts ...Option) Stream {
	return newNetStream(l, conn, opts...)
}

// Option configures a Stream at construction.
type Option func(*netStream)

// WithNeverPartialWrites makes RawWrite loop internally until the whole
// slice is written or an error occurs, instead of returning a short
// write.
func WithNeverPartialWrites() Option {
	return func(s *netStream) { s.neverPartialWrites = true }
}

// WithReadChunkSize overrides the default read chunk size used by the
// background read pump.
func WithReadChunkSize(n int) Option {
	return func(s *netStream) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}
