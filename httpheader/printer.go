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
	"fmt"
	"strconv"
	"strings"

	"github.com/nabbar/gsk/buffer"
)

// FuncPrintLine receives one "Key: Value" (or start) line at a time, with
// no line terminator attached.
type FuncPrintLine func(line string)

// PrintRequest emits the request line followed by one line per populated
// header field, via emit.
func PrintRequest(r *Request, emit FuncPrintLine) {
	emit(fmt.Sprintf("%s %s %s", r.Verb, r.URI, r.Version))
	printHeaderFields(&r.Header, emit)
}

// PrintResponse emits the status line followed by one line per populated
// header field, via emit.
func PrintResponse(r *Response, emit FuncPrintLine) {
	emit(fmt.Sprintf("%s %d %s", r.Version, r.StatusCode, r.Reason))
	printHeaderFields(&r.Header, emit)
}

func printHeaderFields(h *Header, emit FuncPrintLine) {
	if h.Host != "" {
		emit("Host: " + h.Host)
	}
	if h.ContentLength >= 0 {
		emit("Content-Length: " + strconv.FormatInt(h.ContentLength, 10))
	}
	if h.ContentType != nil {
		emit("Content-Type: " + printContentType(h.ContentType))
	}
	if len(h.TransferEncoding) > 0 {
		emit("Transfer-Encoding: " + strings.Join(h.TransferEncoding, ", "))
	}
	if len(h.Accept) > 0 {
		emit("Accept: " + printQualityMediaList(h.Accept))
	}
	if len(h.AcceptCharset) > 0 {
		emit("Accept-Charset: " + printQualityStringList(h.AcceptCharset))
	}
	if len(h.AcceptEncoding) > 0 {
		emit("Accept-Encoding: " + printQualityStringList(h.AcceptEncoding))
	}
	if len(h.AcceptLanguage) > 0 {
		emit("Accept-Language: " + printQualityStringList(h.AcceptLanguage))
	}
	if len(h.TE) > 0 {
		emit("TE: " + printQualityStringList(h.TE))
	}
	if h.Range != nil {
		emit("Range: " + printRange(h.Range))
	}
	if h.CacheControl != nil {
		emit("Cache-Control: " + printCacheControl(h.CacheControl))
	}
	switch h.Connection {
	case KeepAlive:
		emit("Connection: Keep-Alive")
	case Close:
		emit("Connection: close")
	}
	if h.WWWAuthenticate != nil {
		emit("WWW-Authenticate: " + h.WWWAuthenticate.Scheme + " realm=\"" + h.WWWAuthenticate.Realm + "\"")
	}
	if h.Authorization != nil {
		emit("Authorization: " + printAuthorization(h.Authorization))
	}
	for _, c := range h.Cookies {
		emit("Cookie: " + c.Name + "=" + c.Value)
	}
	for _, c := range h.SetCookies {
		emit("Set-Cookie: " + printSetCookie(c))
	}
	if h.Misc != nil {
		for _, k := range h.Misc.Keys() {
			v, _ := h.Misc.Get(k)
			emit(k + ": " + v)
		}
	}
}

func printContentType(ct *ContentType) string {
	s := ct.MediaType.String()
	if ct.Charset != "" {
		s += "; charset=" + ct.Charset
	}
	for k, v := range ct.Params {
		s += "; " + k + "=" + v
	}
	return s
}

func printQualityStringList(l QualityList[string]) string {
	parts := make([]string, 0, len(l))
	for _, it := range l {
		parts = append(parts, formatQualityToken(it.Value, it.Q))
	}
	return strings.Join(parts, ", ")
}

func printQualityMediaList(l QualityList[MediaType]) string {
	parts := make([]string, 0, len(l))
	for _, it := range l {
		parts = append(parts, formatQualityToken(it.Value.String(), it.Q))
	}
	return strings.Join(parts, ", ")
}

func formatQualityToken(value string, q float64) string {
	if q >= 1 {
		return value
	}
	return value + ";q=" + strconv.FormatFloat(q, 'g', -1, 64)
}

func printRange(r *RangeSpec) string {
	s := "bytes="
	if r.Start >= 0 {
		s += strconv.FormatInt(r.Start, 10)
	}
	s += "-"
	if r.End >= 0 {
		s += strconv.FormatInt(r.End, 10)
	}
	return s
}

func printCacheControl(c *CacheDirective) string {
	var parts []string
	add := func(s string) { parts = append(parts, s) }

	if c.NoCache {
		if len(c.NoCacheFields) > 0 {
			add("no-cache=\"" + strings.Join(c.NoCacheFields, ", ") + "\"")
		} else {
			add("no-cache")
		}
	}
	if c.NoStore {
		add("no-store")
	}
	if c.NoTransform {
		add("no-transform")
	}
	if c.Public {
		add("public")
	}
	if c.Private {
		if len(c.PrivateFields) > 0 {
			add("private=\"" + strings.Join(c.PrivateFields, ", ") + "\"")
		} else {
			add("private")
		}
	}
	if c.MustRevalidate {
		add("must-revalidate")
	}
	if c.ProxyRevalidate {
		add("proxy-revalidate")
	}
	if c.OnlyIfCached {
		add("only-if-cached")
	}
	if c.MaxAge >= 0 {
		add("max-age=" + strconv.Itoa(c.MaxAge))
	}
	if c.SMaxAge >= 0 {
		add("s-maxage=" + strconv.Itoa(c.SMaxAge))
	}
	if c.MaxStale >= 0 {
		add("max-stale=" + strconv.Itoa(c.MaxStale))
	}
	if c.MinFresh >= 0 {
		add("min-fresh=" + strconv.Itoa(c.MinFresh))
	}
	return strings.Join(parts, ", ")
}

func printAuthorization(a *Authorization) string {
	if strings.EqualFold(a.Scheme, "Basic") {
		return "Basic <redacted>"
	}
	return a.Scheme + " username=\"" + a.User + "\", realm=\"" + a.Realm + "\", nonce=\"" + a.Nonce + "\""
}

func printSetCookie(c Cookie) string {
	s := c.Name + "=" + c.Value
	if c.Domain != "" {
		s += "; Domain=" + c.Domain
	}
	if c.Path != "" {
		s += "; Path=" + c.Path
	}
	if c.Expires != "" {
		s += "; Expires=" + c.Expires
	}
	if c.MaxAge != 0 {
		s += "; Max-Age=" + strconv.Itoa(c.MaxAge)
	}
	if c.Secure {
		s += "; Secure"
	}
	return s
}

// WriteRequest prints r into buf as CRLF-terminated lines, ending with the
// blank line that separates headers from body.
func WriteRequest(buf buffer.Buffer, r *Request) {
	PrintRequest(r, func(line string) { buf.AppendString(line + "\r\n") })
	buf.AppendString("\r\n")
}

// WriteResponse prints r into buf as CRLF-terminated lines, ending with
// the blank line that separates headers from body.
func WriteResponse(buf buffer.Buffer, r *Response) {
	PrintResponse(r, func(line string) { buf.AppendString(line + "\r\n") })
	buf.AppendString("\r\n")
}
