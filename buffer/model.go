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
	"fmt"
	"io"
)

// fragment is one link of the buffer's chain. body[off:] is the unread
// portion; release (if non-nil) fires once off reaches len(body).
type fragment struct {
	body    []byte
	off     int
	release ReleaseFunc
	next    *fragment
}

func (f *fragment) len() int {
	return len(f.body) - f.off
}

func (f *fragment) drainN(n int) {
	f.off += n
	if f.off >= len(f.body) && f.release != nil {
		f.release()
		f.release = nil
	}
}

type buf struct {
	head *fragment
	tail *fragment
	size int64
}

func (b *buf) pushFragment(f *fragment) {
	if f.len() == 0 {
		if f.release != nil {
			f.release()
		}
		return
	}
	if b.tail == nil {
		b.head, b.tail = f, f
	} else {
		b.tail.next = f
		b.tail = f
	}
	b.size += int64(f.len())
}

func (b *buf) Size() int64 { return b.size }

func (b *buf) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	b.pushFragment(&fragment{body: cp})
}

func (b *buf) AppendString(s string) {
	b.Append([]byte(s))
}

func (b *buf) AppendForeign(p []byte, release ReleaseFunc) {
	b.pushFragment(&fragment{body: p, release: release})
}

func (b *buf) Printf(format string, args ...interface{}) {
	b.AppendString(fmt.Sprintf(format, args...))
}

// popFront drops n bytes (n <= b.size) from the head of the chain, firing
// release callbacks for fragments fully consumed, without copying bodies.
func (b *buf) popFront(n int64) {
	for n > 0 && b.head != nil {
		avail := int64(b.head.len())
		if avail > n {
			b.head.drainN(int(n))
			b.size -= n
			n = 0
		} else {
			b.head.drainN(b.head.len())
			b.size -= avail
			n -= avail
			b.head = b.head.next
			if b.head == nil {
				b.tail = nil
			}
		}
	}
}

func (b *buf) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.size == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && b.head != nil {
		f := b.head
		c := copy(p[n:], f.body[f.off:])
		n += c
		b.popFront(int64(c))
	}
	return n, nil
}

func (b *buf) ReadByte() (byte, error) {
	var p [1]byte
	n, err := b.Read(p[:])
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	return p[0], nil
}

func (b *buf) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

func (b *buf) Peek(n int) []byte {
	if int64(n) > b.size {
		n = int(b.size)
	}
	if n <= 0 {
		return nil
	}
	out := make([]byte, 0, n)
	for f := b.head; f != nil && len(out) < n; f = f.next {
		need := n - len(out)
		avail := f.body[f.off:]
		if len(avail) > need {
			avail = avail[:need]
		}
		out = append(out, avail...)
	}
	return out
}

func (b *buf) ReadLine() ([]byte, bool) {
	idx := b.IndexOf('\n')
	if idx < 0 {
		return nil, false
	}
	line := b.Peek(int(idx))
	b.popFront(idx + 1)
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, true
}

func (b *buf) IndexOf(c byte) int64 {
	var off int64
	for f := b.head; f != nil; f = f.next {
		for i, v := range f.body[f.off:] {
			if v == c {
				return off + int64(i)
			}
		}
		off += int64(f.len())
	}
	return -1
}

func (b *buf) Iterator() Iterator {
	return &iter{b: b}
}

// Drain moves the whole chain across in O(1): it relinks src's fragments
// onto the receiver's tail and empties src. No fragment body is copied and
// no release callback fires early.
func (b *buf) Drain(src Buffer) {
	s, ok := src.(*buf)
	if !ok || s == nil || s.head == nil {
		return
	}
	if b.tail == nil {
		b.head = s.head
	} else {
		b.tail.next = s.head
	}
	b.tail = s.tail
	b.size += s.size

	s.head, s.tail, s.size = nil, nil, 0
}

// Transfer moves up to n bytes from src to the receiver. Whole fragments
// are relinked; a fragment straddling the n boundary is split, which
// requires copying only the bytes that remain behind in src (the boundary
// fragment's tail), never the bytes that move.
func (b *buf) Transfer(src Buffer, n int64) int64 {
	s, ok := src.(*buf)
	if !ok || s == nil || n <= 0 {
		return 0
	}
	if n > s.size {
		n = s.size
	}
	moved := n

	for n > 0 && s.head != nil {
		f := s.head
		avail := int64(f.len())
		if avail <= n {
			s.head = f.next
			if s.head == nil {
				s.tail = nil
			}
			s.size -= avail
			n -= avail
			f.next = nil
			b.pushFragment(f)
		} else {
			// split: the part that stays in src keeps the release
			// callback (it still owns the unreleased tail); the part
			// that moves is a fresh owned copy, since a foreign
			// fragment's release must fire exactly once and only when
			// ALL of its bytes (including the part staying behind) have
			// drained.
			cp := make([]byte, n)
			copy(cp, f.body[f.off:f.off+int(n)])
			b.pushFragment(&fragment{body: cp})
			f.off += int(n)
			s.size -= n
			n = 0
		}
	}
	return moved
}

// Destruct is an alias for drain-to-void: every fragment is dropped and its
// release callback (if any) fires exactly once, via popFront/drainN — unlike
// Drain, which just relinks the chain onto another Buffer without releasing.
func (b *buf) Destruct() {
	b.popFront(b.size)
}

type iter struct {
	b   *buf
	off int64
}

func (it *iter) Offset() int64 { return it.off }

func (it *iter) Peek(n int) []byte {
	if n <= 0 {
		return nil
	}
	out := make([]byte, 0, n)
	var pos int64
	for f := it.b.head; f != nil && len(out) < n; f = f.next {
		flen := int64(f.len())
		if pos+flen <= it.off {
			pos += flen
			continue
		}
		start := 0
		if it.off > pos {
			start = int(it.off - pos)
		}
		avail := f.body[f.off+start:]
		need := n - len(out)
		if len(avail) > need {
			avail = avail[:need]
		}
		out = append(out, avail...)
		pos += flen
	}
	return out
}

func (it *iter) Skip(n int) int {
	remaining := it.b.size - it.off
	if int64(n) > remaining {
		n = int(remaining)
	}
	if n > 0 {
		it.off += int64(n)
	}
	return n
}

func (it *iter) FindChar(c byte) int64 {
	var pos int64
	for f := it.b.head; f != nil; f = f.next {
		flen := int64(f.len())
		if pos+flen <= it.off {
			pos += flen
			continue
		}
		start := 0
		if it.off > pos {
			start = int(it.off - pos)
		}
		for i, v := range f.body[f.off+start:] {
			if v == c {
				return pos + int64(start) + int64(i)
			}
		}
		pos += flen
	}
	return -1
}
