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

// Cookie is one Cookie/Set-Cookie entry.
type Cookie struct {
	Name    string
	Value   string
	Domain  string
	Path    string
	Expires string
	MaxAge  int // 0 means unset
	Comment string
	Version int
	Secure  bool
}

// parseCookieLine parses a Cookie or Set-Cookie header value into zero or
// more Cookie entries: key=value pairs separated by ';' or ',', where a
// recognized attribute name (case-insensitive) attaches to the
// most-recently-seen name=value pair instead of starting a new cookie.
func parseCookieLine(value string) []Cookie {
	var out []Cookie
	var cur *Cookie

	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, hasVal := cutEquals(part)
		v = unquote(v)

		switch strings.ToLower(k) {
		case "domain":
			if cur != nil {
				cur.Domain = v
			}
		case "path":
			if cur != nil {
				cur.Path = v
			}
		case "expires":
			if cur != nil {
				cur.Expires = v
			}
		case "max-age":
			if cur != nil {
				n, _ := strconv.Atoi(v)
				cur.MaxAge = n
			}
		case "comment":
			if cur != nil {
				cur.Comment = v
			}
		case "version":
			if cur != nil {
				n, _ := strconv.Atoi(v)
				cur.Version = n
			}
		case "secure":
			if cur != nil {
				cur.Secure = true
			}
		default:
			out = append(out, Cookie{Name: k})
			cur = &out[len(out)-1]
			if hasVal {
				cur.Value = v
			}
		}
	}
	return out
}

func cutEquals(s string) (key, value string, hasValue bool) {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
