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

import "sort"

// QualityItem pairs a negotiated value (a charset, a language tag, an
// encoding, a media type) with its RFC 2616 `;q=` preference.
type QualityItem[T any] struct {
	Value T
	Q     float64
}

// QualityList is the boxed, quality-ordered list Accept/Accept-Charset/
// Accept-Encoding/Accept-Language/TE parse into. Add preserves arrival
// order among equal-quality entries (stable sort), matching the
// reference parser's tie-break behavior.
type QualityList[T any] []QualityItem[T]

// Add appends value at quality q and re-sorts by descending q, keeping
// equal-q entries in the order they were added.
func (l *QualityList[T]) Add(value T, q float64) {
	*l = append(*l, QualityItem[T]{Value: value, Q: q})
	sort.SliceStable(*l, func(i, j int) bool {
		return (*l)[i].Q > (*l)[j].Q
	})
}

// Values returns the list's values in quality order, discarding the
// quality factors.
func (l QualityList[T]) Values() []T {
	out := make([]T, len(l))
	for i, it := range l {
		out[i] = it.Value
	}
	return out
}
