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

package bodyframing

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/httpheader"
)

// ErrChunkSyntax is returned when a chunk-size line cannot be parsed as a
// hexadecimal length.
var ErrChunkSyntax = errors.New("bodyframing: malformed chunk size line")

// Mode selects how an entity body is delimited on the wire.
type Mode int

const (
	// ContentLength reads exactly N bytes, per a numeric Content-Length.
	ContentLength Mode = iota
	// Chunked decodes the chunked transfer-coding inline.
	Chunked
	// UntilClose reads until the transport signals EOF; used when neither
	// Content-Length nor chunked framing is present.
	UntilClose
)

// Detect resolves the framing mode and (for ContentLength) the declared
// size from a parsed header, per RFC 2616 §4.4's precedence: chunked
// transfer-coding wins over Content-Length, which wins over read-to-EOF.
func Detect(h *httpheader.Header) (Mode, int64) {
	for _, te := range h.TransferEncoding {
		if strings.EqualFold(strings.TrimSpace(te), "chunked") {
			return Chunked, -1
		}
	}
	if h.ContentLength >= 0 {
		return ContentLength, h.ContentLength
	}
	return UntilClose, -1
}

// Decoder incrementally strips body framing from the wire, yielding the
// raw entity bytes. Feed is idempotent to call with new input appended
// between calls: it drains as much of in as is currently decodable and
// appends the decoded bytes to out.
type Decoder struct {
	mode      Mode
	remaining int64 // ContentLength: bytes left. Chunked: bytes left in the current chunk, -1 = need a size line.
	done      bool
}

// NewDecoder returns a Decoder for the given mode/declared length. length
// is ignored for Chunked and UntilClose.
func NewDecoder(mode Mode, length int64) *Decoder {
	d := &Decoder{mode: mode}
	switch mode {
	case ContentLength:
		d.remaining = length
		if length <= 0 {
			d.done = true
		}
	case Chunked:
		d.remaining = -1
	case UntilClose:
		d.remaining = -1
	}
	return d
}

// Done reports whether the body has been fully decoded.
func (d *Decoder) Done() bool { return d.done }

// Feed drains whatever of in's currently-buffered bytes the framing allows
// into out. It returns true once the body is fully decoded. For
// UntilClose, closed must be true once the transport has reported EOF —
// the decoder cannot otherwise know where the body ends.
func (d *Decoder) Feed(in buffer.Buffer, out buffer.Buffer, closed bool) (bool, error) {
	if d.done {
		return true, nil
	}

	switch d.mode {
	case ContentLength:
		return d.feedContentLength(in, out)
	case UntilClose:
		return d.feedUntilClose(in, out, closed)
	case Chunked:
		return d.feedChunked(in, out)
	}
	return d.done, nil
}

func (d *Decoder) feedContentLength(in buffer.Buffer, out buffer.Buffer) (bool, error) {
	n := out.Transfer(in, d.remaining)
	d.remaining -= n
	if d.remaining <= 0 {
		d.done = true
	}
	return d.done, nil
}

func (d *Decoder) feedUntilClose(in buffer.Buffer, out buffer.Buffer, closed bool) (bool, error) {
	out.Drain(in)
	if closed {
		d.done = true
	}
	return d.done, nil
}

func (d *Decoder) feedChunked(in buffer.Buffer, out buffer.Buffer) (bool, error) {
	for {
		if d.remaining < 0 {
			line, ok := in.ReadLine()
			if !ok {
				return false, nil
			}
			size, err := parseChunkSize(string(line))
			if err != nil {
				return false, err
			}
			if size == 0 {
				// Trailing CRLF after the zero chunk, then (per spec scope
				// here) no trailer headers are supported.
				in.ReadLine()
				d.done = true
				return true, nil
			}
			d.remaining = size
		}

		if d.remaining > 0 {
			n := out.Transfer(in, d.remaining)
			d.remaining -= n
			if d.remaining > 0 {
				return false, nil
			}
		}

		// Consume the CRLF that terminates this chunk's data.
		if _, ok := in.ReadLine(); !ok {
			d.remaining = 0
			return false, nil
		}
		d.remaining = -1
	}
}

func parseChunkSize(line string) (int64, error) {
	line = strings.TrimSpace(line)
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		line = line[:idx]
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 16, 64)
	if err != nil {
		return 0, ErrChunkSyntax
	}
	return n, nil
}

// EncodeChunk appends one chunked-transfer-coding chunk (size line, data,
// trailing CRLF) for p to out. Passing an empty p writes the terminal
// zero-length chunk.
func EncodeChunk(out buffer.Buffer, p []byte) {
	out.AppendString(strconv.FormatInt(int64(len(p)), 16) + "\r\n")
	if len(p) > 0 {
		out.Append(p)
	}
	out.AppendString("\r\n")
}

// ExtractHeaderBlock reports whether in currently holds a full header
// block (a request or status line plus fields, through the blank line
// terminating it) and, if so, consumes and returns it as a string ready
// for httpheader.ParseRequest/ParseResponse. It leaves in untouched when
// the block is not yet complete, so it is safe to call again as more
// bytes arrive.
func ExtractHeaderBlock(in buffer.Buffer) (string, bool) {
	n := int(in.Size())
	if n == 0 {
		return "", false
	}
	avail := in.Peek(n)
	idx := strings.Index(string(avail), "\r\n\r\n")
	if idx < 0 {
		return "", false
	}

	total := idx + 4
	raw := in.Peek(total)
	throwaway := buffer.New()
	throwaway.Transfer(in, int64(total))
	return string(raw), true
}
