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

import "strconv"

// Verb is an HTTP request method.
type Verb string

const (
	GET     Verb = "GET"
	HEAD    Verb = "HEAD"
	POST    Verb = "POST"
	PUT     Verb = "PUT"
	DELETE  Verb = "DELETE"
	OPTIONS Verb = "OPTIONS"
	CONNECT Verb = "CONNECT"
	TRACE   Verb = "TRACE"
)

// Version is an HTTP protocol version (e.g. 1.1).
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return "HTTP/" + strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// ConnectionType is the resolved meaning of the Connection header.
type ConnectionType int

const (
	// Close is the HTTP/1.0 default and the explicit HTTP/1.1 opt-out.
	Close ConnectionType = iota
	// KeepAlive is the HTTP/1.1 default and the explicit HTTP/1.0 opt-in.
	KeepAlive
)

// HasBody reports whether a message with the given verb and status code
// carries an entity body, per RFC 2616 §4.3 and the method semantics in
// §9. status is ignored (pass 0) when classifying a request instead of a
// response.
func HasBody(verb Verb, status int) bool {
	if verb == HEAD {
		return false
	}
	switch {
	case status >= 100 && status < 200:
		return false
	case status == 204, status == 205, status == 304:
		return false
	}
	if status != 0 {
		// Response classification: presence is governed by status code
		// once the exclusions above are out of the way.
		return true
	}
	switch verb {
	case PUT, POST:
		return true
	case GET, HEAD, OPTIONS, DELETE, CONNECT, TRACE:
		return false
	default:
		return true
	}
}
