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

package contentrouter

import (
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
)

// ContentId selects which requests a handler applies to. A zero field
// means "don't care" for that axis.
type ContentId struct {
	Host            string
	UserAgentPrefix string
	Path            string
	PathPrefix      string
	PathSuffix      string
}

// Result is a handler's verdict.
type Result uint8

const (
	// OK means the handler produced a final response.
	OK Result = iota
	// Chain falls through to the next handler registered in the same
	// slot; if none remains, the next slot in priority order is tried.
	Chain
	// Error causes the configured error handler to produce a 500.
	Error
)

// Action controls where a newly added handler lands relative to any
// handlers already registered for the same ContentId.
type Action uint8

const (
	Prepend Action = iota
	Append
	Replace
)

// HandlerFunc sees the raw request and, if any, its POST body stream.
type HandlerFunc func(req *httpheader.Request, body stream.Stream) (Result, *httpheader.Response, stream.Stream, error)

// CGIVar is one decoded multipart/form-data field.
type CGIVar struct {
	Name        string
	Value       []byte
	Filename    string
	ContentType string
}

// CGIHandlerFunc receives pre-parsed form variables instead of a raw
// body stream. CGI handlers cannot chain: Result is always implicitly
// OK, and a returned error is treated as Error.
type CGIHandlerFunc func(req *httpheader.Request, vars []CGIVar) (*httpheader.Response, stream.Stream, error)

// ErrorHandlerFunc produces the page shown for a given status/error; a
// nil return falls back to the router's built-in plaintext 500 page.
type ErrorHandlerFunc func(req *httpheader.Request, status int, cause error) (*httpheader.Response, stream.Stream)

// FileKind selects how AddFile interprets fsPath.
type FileKind uint8

const (
	// FileExact serves exactly one file at the registered path.
	FileExact FileKind = iota
	// FileDir serves every direct child of fsPath, non-recursively.
	FileDir
	// FileDirTree serves fsPath and every file beneath it, recursively.
	FileDirTree
)

// PathSecurityConfig guards static file serving against path traversal
// and access to sensitive files.
type PathSecurityConfig struct {
	Enabled         bool
	AllowDotFiles   bool
	MaxPathDepth    int
	BlockedPatterns []string
}

// DefaultPathSecurityConfig returns a conservative, enabled-by-default
// configuration.
func DefaultPathSecurityConfig() PathSecurityConfig {
	return PathSecurityConfig{
		Enabled:       true,
		AllowDotFiles: false,
		MaxPathDepth:  10,
		BlockedPatterns: []string{
			".git", ".env", ".htpasswd", ".htaccess",
		},
	}
}
