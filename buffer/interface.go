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

package buffer

import (
	"io"
)

// ReleaseFunc is called exactly once, when the last byte of the foreign
// fragment it was registered for has been drained.
type ReleaseFunc func()

// Iterator walks a Buffer's logical byte stream without draining it.
type Iterator interface {
	// Offset returns the current position in the logical byte stream.
	Offset() int64
	// Peek returns up to n bytes starting at the current position without
	// advancing it.
	Peek(n int) []byte
	// Skip advances the current position by n bytes, capped at the size of
	// the buffer.
	Skip(n int) int
	// FindChar returns the offset (relative to the buffer start, not the
	// iterator's current position) of the next occurrence of c at or after
	// the current position, or -1 if none is found.
	FindChar(c byte) int64
}

// Buffer is a chunked byte queue. It satisfies io.Reader, io.Writer and
// io.ByteReader so it can stand in wherever the standard library expects a
// buffer, while additionally supporting never-copy drain/transfer between
// two Buffers and foreign-memory fragments with release callbacks.
type Buffer interface {
	io.Reader
	io.Writer
	io.ByteReader

	// Size returns the number of unread bytes currently queued.
	Size() int64

	// Append copies p into a new owned fragment at the tail of the queue.
	Append(p []byte)

	// AppendString is a convenience wrapper around Append.
	AppendString(s string)

	// AppendForeign appends a fragment that borrows p rather than copying
	// it. release is invoked exactly once, when the fragment is fully
	// drained (by Read, Peek+Skip, Drain, Transfer, or Destruct). p must not
	// be modified by the caller until release fires.
	AppendForeign(p []byte, release ReleaseFunc)

	// Printf formats according to a format specifier and appends the result
	// as an owned fragment.
	Printf(format string, args ...interface{})

	// Peek returns up to n bytes from the head of the queue without
	// consuming them. The returned slice may alias internal storage and
	// must not be retained past the next mutating call.
	Peek(n int) []byte

	// ReadLine reads and removes one line (excluding the trailing '\n', and
	// any preceding '\r') from the head of the queue. ok is false if no
	// full line is currently buffered.
	ReadLine() (line []byte, ok bool)

	// IndexOf returns the offset of the first occurrence of b in the queue,
	// or -1 if not found.
	IndexOf(b byte) int64

	// Iterator returns a read-only cursor over the buffer starting at
	// offset 0.
	Iterator() Iterator

	// Drain moves every byte currently in src to the tail of the receiver,
	// without copying fragment bodies, leaving src empty.
	Drain(src Buffer)

	// Transfer moves up to n bytes from src to the tail of the receiver.
	// Fragment bodies are only copied when n falls inside a fragment
	// (splitting it); whole fragments are relinked. Returns the number of
	// bytes actually moved (less than n at src's EOF).
	Transfer(src Buffer, n int64) int64

	// Destruct drains every fragment to nothing, invoking all release
	// callbacks exactly once each, equivalent to draining to a throwaway
	// buffer.
	Destruct()
}

// New returns an empty Buffer.
func New() Buffer {
	return &buf{}
}

// NewFromBytes returns a Buffer pre-populated with a copy of p.
func NewFromBytes(p []byte) Buffer {
	b := &buf{}
	b.Append(p)
	return b
}
