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

	"github.com/nabbar/gsk/buffer"
)

// Attach pumps src's read half into dst's write half: whenever src
// becomes readable, the available bytes are moved (without copying, via
// RawReadBuffer/RawWriteBuffer) into dst. Pumping continues until either
// side shuts down, at which point the other side's matching half is shut
// down too (src EOF shuts down dst's write half; dst write error shuts
// down src's read half).
func Attach(src, dst Stream) {
	tmp := buffer.New()

	pump := func(interface{}) {
		for {
			n, err := src.RawReadBuffer(tmp)
			if n > 0 {
				if _, werr := dst.RawWriteBuffer(tmp); werr != nil {
					_ = src.ShutdownRead()
					return
				}
			}
			if err == ErrWouldBlock {
				return
			}
			if err == io.EOF {
				_ = dst.ShutdownWrite()
				return
			}
			if err != nil {
				_ = dst.ShutdownWrite()
				return
			}
		}
	}

	_ = src.ReadHook().Trap(pump, func(interface{}) {
		_ = dst.ShutdownWrite()
	}, nil, nil)

	// Drain whatever is already buffered before the trap was installed.
	pump(nil)
}

// AttachPair applies Attach in both directions, fully coupling a and b.
func AttachPair(a, b Stream) {
	Attach(a, b)
	Attach(b, a)
}
