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
	"fmt"
	"strings"
	"sync"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/memstream"
	"github.com/nabbar/gsk/stream"
)

type entry struct {
	id  ContentId
	fn  HandlerFunc
	cgi CGIHandlerFunc
}

// Router dispatches a request to the first matching handler chain,
// in the eight-tier priority order fixed by spec, and serves static
// MIME-typed content registered via AddFile.
type Router struct {
	mu sync.RWMutex

	slots [slotCount][]*entry

	mimeRules   []mimeRule
	mimeDefault string
	mimeCache   map[string]string

	errorHandler ErrorHandlerFunc

	pathSecurity PathSecurityConfig

	watchers []*fileWatch
}

// New returns an empty Router with default MIME type "application/octet-stream"
// and path security enabled.
func New() *Router {
	return &Router{
		mimeDefault:  "application/octet-stream",
		mimeCache:    map[string]string{},
		pathSecurity: DefaultPathSecurityConfig(),
	}
}

// Close stops every fsnotify watcher started by AddFile for a
// directory-tree registration.
func (r *Router) Close() error {
	r.mu.Lock()
	ws := r.watchers
	r.watchers = nil
	r.mu.Unlock()

	var firstErr error
	for _, w := range ws {
		if err := w.watcher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// AddHandler registers a raw handler under id, in the slot its axes
// select, applying action relative to whatever is already registered
// in that exact ContentId.
func (r *Router) AddHandler(id ContentId, fn HandlerFunc, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(id, &entry{id: id, fn: fn}, action)
}

// AddCGIHandler registers a CGI handler, which receives decoded
// multipart/form-data variables instead of a raw body stream and
// cannot chain.
func (r *Router) AddCGIHandler(id ContentId, fn CGIHandlerFunc, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(id, &entry{id: id, cgi: fn}, action)
}

func (r *Router) addLocked(id ContentId, e *entry, action Action) {
	s := slotOf(id)
	list := r.slots[s]

	switch action {
	case Prepend:
		r.slots[s] = append([]*entry{e}, list...)
	case Replace:
		out := make([]*entry, 0, len(list)+1)
		replaced := false
		for _, cur := range list {
			if cur.id == id {
				out = append(out, e)
				replaced = true
				continue
			}
			out = append(out, cur)
		}
		if !replaced {
			out = append(out, e)
		}
		r.slots[s] = out
	default: // Append
		r.slots[s] = append(list, e)
	}
}

// SetErrorHandler installs the handler used to build the 500 response
// when a handler returns Error or a non-nil error.
func (r *Router) SetErrorHandler(fn ErrorHandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorHandler = fn
}

// SetPathSecurity installs the traversal-protection policy used by
// static file lookups (AddFile-registered handlers).
func (r *Router) SetPathSecurity(cfg PathSecurityConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pathSecurity = cfg
}

// GetPathSecurity reports the currently installed policy.
func (r *Router) GetPathSecurity() PathSecurityConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pathSecurity
}

// Dispatch resolves req against the registered handlers in priority
// order and runs the winning chain, falling through on Chain until a
// handler returns OK/Error or every slot is exhausted (404).
func (r *Router) Dispatch(req *httpheader.Request, body stream.Stream) (*httpheader.Response, stream.Stream) {
	host := req.Host
	ua := ""
	if req.Misc != nil {
		ua, _ = req.Misc.Get("User-Agent")
	}
	path := requestPath(req.URI)

	r.mu.RLock()
	snapshot := r.slots
	errH := r.errorHandler
	r.mu.RUnlock()

	for s := slot(0); s < slotCount; s++ {
		for _, e := range snapshot[s] {
			if !matches(e.id, host, ua, path) {
				continue
			}

			if e.cgi != nil {
				vars, err := decodeCGIVars(req, body)
				if err != nil {
					return r.errorResponse(req, 500, err, errH)
				}
				resp, content, err := e.cgi(req, vars)
				if err != nil {
					return r.errorResponse(req, 500, err, errH)
				}
				return resp, content
			}

			res, resp, content, err := e.fn(req, body)
			switch res {
			case OK:
				if err != nil {
					return r.errorResponse(req, 500, err, errH)
				}
				return resp, content
			case Error:
				return r.errorResponse(req, 500, err, errH)
			case Chain:
				continue
			}
		}
	}

	return r.notFound(req)
}

func (r *Router) errorResponse(req *httpheader.Request, status int, cause error, h ErrorHandlerFunc) (*httpheader.Response, stream.Stream) {
	if h != nil {
		if resp, content := h(req, status, cause); resp != nil {
			return resp, content
		}
	}
	return defaultErrorPage(req, status, cause)
}

func (r *Router) notFound(req *httpheader.Request) (*httpheader.Response, stream.Stream) {
	r.mu.RLock()
	h := r.errorHandler
	r.mu.RUnlock()
	return r.errorResponse(req, 404, nil, h)
}

func defaultErrorPage(req *httpheader.Request, status int, cause error) (*httpheader.Response, stream.Stream) {
	reason := "Internal Server Error"
	if status == 404 {
		reason = "Not Found"
	}
	body := reason
	if cause != nil {
		body = fmt.Sprintf("%s: %s", reason, cause.Error())
	}
	resp := httpheader.NewResponse(req.Version, status, reason)
	resp.ContentType = &httpheader.ContentType{MediaType: httpheader.MediaType{Type: "text", Subtype: "plain"}}
	resp.ContentLength = int64(len(body))
	resp.Connection = req.Connection
	return resp, memstream.NewBufferSource(buffer.NewFromBytes([]byte(body)))
}

// requestPath strips a query string or fragment off a request-line URI.
func requestPath(uri string) string {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		return uri[:i]
	}
	return uri
}
