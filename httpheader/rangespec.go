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

package httpheader

import (
	"strconv"
	"strings"
)

// RangeSpec is a parsed "bytes=S-E" Range header. Start/End are -1 when
// the corresponding bound was omitted.
type RangeSpec struct {
	Start int64
	End   int64
}

func parseRange(value string) *RangeSpec {
	_, spec, ok := strings.Cut(value, "=")
	if !ok {
		spec = value
	}
	s, e, _ := strings.Cut(strings.TrimSpace(spec), "-")

	r := &RangeSpec{Start: -1, End: -1}
	if s = strings.TrimSpace(s); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			r.Start = n
		}
	}
	if e = strings.TrimSpace(e); e != "" {
		if n, err := strconv.ParseInt(e, 10, 64); err == nil {
			r.End = n
		}
	}
	return r
}
