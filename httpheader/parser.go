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
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedStartLine is returned when the request or status line
// cannot be split into its required fields.
var ErrMalformedStartLine = errors.New("httpheader: malformed start line")

type fieldHandler func(h *Header, value string)

// handlerTable maps a case-folded header key to its typed setter. It is
// populated once, at package init, per spec: a global table rather than a
// per-parse switch statement.
var handlerTable map[string]fieldHandler

func init() {
	handlerTable = map[string]fieldHandler{
		"cookie":            func(h *Header, v string) { h.Cookies = append(h.Cookies, parseCookieLine(v)...) },
		"set-cookie":        func(h *Header, v string) { h.SetCookies = append(h.SetCookies, parseCookieLine(v)...) },
		"accept-charset":    func(h *Header, v string) { h.AcceptCharset = parseQualityStringList(v) },
		"accept-encoding":   func(h *Header, v string) { h.AcceptEncoding = parseQualityStringList(v) },
		"te":                func(h *Header, v string) { h.TE = parseQualityStringList(v) },
		"accept-language":   func(h *Header, v string) { h.AcceptLanguage = parseQualityStringList(v) },
		"accept":            func(h *Header, v string) { h.Accept = parseQualityMediaList(v) },
		"range":             func(h *Header, v string) { h.Range = parseRange(v) },
		"cache-control":     func(h *Header, v string) { h.CacheControl = parseCacheControl(v) },
		"content-type":      func(h *Header, v string) { h.ContentType = parseContentType(v) },
		"www-authenticate":  func(h *Header, v string) { h.WWWAuthenticate = parseWWWAuthenticate(v) },
		"authorization":     func(h *Header, v string) { h.Authorization = parseAuthorization(v) },
		"content-length": func(h *Header, v string) {
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				h.ContentLength = n
			}
		},
		"transfer-encoding": func(h *Header, v string) {
			for _, tok := range strings.Split(v, ",") {
				h.TransferEncoding = append(h.TransferEncoding, strings.TrimSpace(tok))
			}
		},
		"connection": func(h *Header, v string) {
			if strings.EqualFold(strings.TrimSpace(v), "keep-alive") {
				h.Connection = KeepAlive
			} else if strings.EqualFold(strings.TrimSpace(v), "close") {
				h.Connection = Close
			}
		},
		"host": func(h *Header, v string) { h.Host = strings.TrimSpace(v) },
	}
}

// ParseOptions configures Parse/ParseRequest/ParseResponse.
type ParseOptions struct {
	// Strict drops unrecognized keys instead of keeping them in Misc.
	Strict bool
	// SaveErrors keeps parsing subsequent lines after a malformed one
	// instead of aborting; malformed lines are simply skipped.
	SaveErrors bool
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	// Drop a single trailing blank line (the header/body separator), if
	// present, so callers can pass either "headers\n\n" or "headers\n".
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func parseFieldLines(h *Header, lines []string, opt ParseOptions) {
	for _, line := range lines {
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			if opt.SaveErrors {
				continue
			}
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		lk := strings.ToLower(key)

		if fn, known := handlerTable[lk]; known {
			fn(h, value)
			continue
		}
		if opt.Strict {
			continue
		}
		if h.Misc == nil {
			h.Misc = NewMiscFields()
		}
		h.Misc.Set(key, value)
	}
}

// ParseRequest parses a full request (request line + headers) in wire
// format. raw may or may not include the trailing blank line.
func ParseRequest(raw string, opt ParseOptions) (*Request, error) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, ErrMalformedStartLine
	}

	verb, uri, version, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	r := &Request{Header: newHeader(), Verb: verb, URI: uri}
	r.Version = version
	parseFieldLines(&r.Header, lines[1:], opt)
	return r, nil
}

// ParseResponse parses a full response (status line + headers) in wire
// format.
func ParseResponse(raw string, opt ParseOptions) (*Response, error) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, ErrMalformedStartLine
	}

	version, status, reason, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, err
	}

	resp := &Response{Header: newHeader(), StatusCode: status, Reason: reason}
	resp.Version = version
	parseFieldLines(&resp.Header, lines[1:], opt)
	return resp, nil
}

func parseRequestLine(line string) (Verb, string, Version, error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) != 3 {
		return "", "", Version{}, ErrMalformedStartLine
	}
	v, err := parseVersion(fields[2])
	if err != nil {
		return "", "", Version{}, err
	}
	return Verb(fields[0]), fields[1], v, nil
}

func parseStatusLine(line string) (Version, int, string, error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 {
		return Version{}, 0, "", ErrMalformedStartLine
	}
	v, err := parseVersion(fields[0])
	if err != nil {
		return Version{}, 0, "", err
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return Version{}, 0, "", ErrMalformedStartLine
	}
	reason := ""
	if len(fields) == 3 {
		reason = fields[2]
	}
	return v, code, reason, nil
}

func parseVersion(tok string) (Version, error) {
	tok = strings.TrimPrefix(tok, "HTTP/")
	major, minor, ok := strings.Cut(tok, ".")
	if !ok {
		return Version{}, ErrMalformedStartLine
	}
	ma, err1 := strconv.Atoi(major)
	mi, err2 := strconv.Atoi(minor)
	if err1 != nil || err2 != nil {
		return Version{}, ErrMalformedStartLine
	}
	return Version{Major: ma, Minor: mi}, nil
}
