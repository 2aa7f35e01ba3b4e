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

import "strings"

// mimeRule pairs a prefix/suffix match against a served path with the
// MIME type to report for it. Suffix rules are the common case (file
// extensions); prefix rules let a whole served subtree claim a type.
type mimeRule struct {
	prefix, suffix, mimeType string
}

// SetMimeType registers a MIME type for paths matching prefix and/or
// suffix (either may be empty to not constrain that side). Rules are
// tried in registration order; the first match wins.
func (r *Router) SetMimeType(prefix, suffix, mimeType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mimeRules = append(r.mimeRules, mimeRule{prefix: prefix, suffix: suffix, mimeType: mimeType})
}

// SetDefaultMimeType sets the type reported when no rule matches.
func (r *Router) SetDefaultMimeType(mimeType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mimeDefault = mimeType
}

// MimeType resolves the MIME type for a served path, caching the
// result; AddFile's directory-tree watcher invalidates entries under a
// changed subtree via invalidateMimeCache.
func (r *Router) MimeType(path string) string {
	r.mu.RLock()
	if t, ok := r.mimeCache[path]; ok {
		r.mu.RUnlock()
		return t
	}
	r.mu.RUnlock()

	t := r.resolveMimeType(path)

	r.mu.Lock()
	r.mimeCache[path] = t
	r.mu.Unlock()
	return t
}

func (r *Router) resolveMimeType(path string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.mimeRules {
		if rule.prefix != "" && !strings.HasPrefix(path, rule.prefix) {
			continue
		}
		if rule.suffix != "" && !strings.HasSuffix(path, rule.suffix) {
			continue
		}
		return rule.mimeType
	}
	return r.mimeDefault
}

// invalidateMimeCache drops every cached MIME lookup under prefix.
func (r *Router) invalidateMimeCache(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p := range r.mimeCache {
		if strings.HasPrefix(p, prefix) {
			delete(r.mimeCache, p)
		}
	}
}
