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

// CacheDirective is a parsed Cache-Control header. Integer fields use -1
// to mean "not present".
type CacheDirective struct {
	NoCache         bool
	NoCacheFields   []string
	NoStore         bool
	NoTransform     bool
	Public          bool
	Private         bool
	PrivateFields   []string
	MustRevalidate  bool
	ProxyRevalidate bool
	OnlyIfCached    bool
	MaxAge          int
	SMaxAge         int
	MaxStale        int
	MinFresh        int
}

func newCacheDirective() *CacheDirective {
	return &CacheDirective{MaxAge: -1, SMaxAge: -1, MaxStale: -1, MinFresh: -1}
}

func parseCacheControl(value string) *CacheDirective {
	c := newCacheDirective()
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, hasVal := cutEquals(part)
		k = strings.ToLower(strings.TrimSpace(k))
		v = unquote(strings.TrimSpace(v))

		switch k {
		case "no-cache":
			c.NoCache = true
			if hasVal {
				c.NoCacheFields = splitFieldList(v)
			}
		case "no-store":
			c.NoStore = true
		case "no-transform":
			c.NoTransform = true
		case "public":
			c.Public = true
		case "private":
			c.Private = true
			if hasVal {
				c.PrivateFields = splitFieldList(v)
			}
		case "must-revalidate":
			c.MustRevalidate = true
		case "proxy-revalidate":
			c.ProxyRevalidate = true
		case "only-if-cached":
			c.OnlyIfCached = true
		case "max-age":
			c.MaxAge = atoiDefault(v, -1)
		case "s-maxage":
			c.SMaxAge = atoiDefault(v, -1)
		case "max-stale":
			if hasVal {
				c.MaxStale = atoiDefault(v, -1)
			} else {
				c.MaxStale = 0
			}
		case "min-fresh":
			c.MinFresh = atoiDefault(v, -1)
		}
	}
	return c
}

func splitFieldList(v string) []string {
	fields := strings.Split(v, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
