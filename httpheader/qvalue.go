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

// parseQ parses an RFC 2616 qvalue ("0" to "1", up to three decimals),
// defaulting to 1 on any parse failure.
func parseQ(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 1
	}
	return f
}

// parseQualityStringList parses a comma-separated "value[;q=VAL]" list —
// the shape shared by Accept-Charset, Accept-Encoding, Accept-Language,
// and TE — into a quality-ordered list of plain strings.
func parseQualityStringList(value string) QualityList[string] {
	var out QualityList[string]
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segs := strings.Split(part, ";")
		val := strings.TrimSpace(segs[0])
		q := 1.0
		for _, s := range segs[1:] {
			k, v, ok := cutEquals(strings.TrimSpace(s))
			if ok && strings.EqualFold(strings.TrimSpace(k), "q") {
				q = parseQ(v)
			}
		}
		out.Add(val, q)
	}
	return out
}
