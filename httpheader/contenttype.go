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

import "strings"

// MediaType is a type/subtype pair, as used both by Content-Type and by
// the Accept quality list.
type MediaType struct {
	Type    string
	Subtype string
}

func (m MediaType) String() string {
	return m.Type + "/" + m.Subtype
}

// ContentType is a parsed Content-Type header: "type/subtype[; charset=CS]
// [; KEY=VAL]*". Either slot of the media type may be "*".
type ContentType struct {
	MediaType MediaType
	Charset   string
	Params    map[string]string
}

func parseContentType(value string) *ContentType {
	parts := strings.Split(value, ";")
	mt := strings.TrimSpace(parts[0])
	typ, sub, _ := strings.Cut(mt, "/")

	ct := &ContentType{
		MediaType: MediaType{Type: strings.TrimSpace(typ), Subtype: strings.TrimSpace(sub)},
		Params:    map[string]string{},
	}

	for _, p := range parts[1:] {
		k, v, ok := cutEquals(strings.TrimSpace(p))
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = unquote(strings.TrimSpace(v))
		if k == "charset" {
			ct.Charset = v
			continue
		}
		ct.Params[k] = v
	}
	return ct
}

// parseQualityMediaList parses an Accept header's comma-separated
// "type/subtype[;q=VAL]" list into a quality-ordered list.
func parseQualityMediaList(value string) QualityList[MediaType] {
	var out QualityList[MediaType]
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segs := strings.Split(part, ";")
		typ, sub, _ := strings.Cut(strings.TrimSpace(segs[0]), "/")
		mt := MediaType{Type: strings.TrimSpace(typ), Subtype: strings.TrimSpace(sub)}
		q := 1.0
		for _, s := range segs[1:] {
			k, v, ok := cutEquals(strings.TrimSpace(s))
			if ok && strings.EqualFold(strings.TrimSpace(k), "q") {
				q = parseQ(v)
			}
		}
		out.Add(mt, q)
	}
	return out
}
