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
	"path"
	"strings"
)

// IsPathSafe reports whether a served path is allowed under the
// router's current PathSecurityConfig: no ".." traversal past the
// served root, no dotfile access unless allowed, no blocked substring,
// and a bounded path depth.
func (r *Router) IsPathSafe(p string) bool {
	r.mu.RLock()
	cfg := r.pathSecurity
	r.mu.RUnlock()
	return pathIsSafe(p, cfg)
}

func pathIsSafe(p string, cfg PathSecurityConfig) bool {
	if !cfg.Enabled {
		return true
	}

	clean := path.Clean("/" + p)
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return false
		}
	}

	if !cfg.AllowDotFiles {
		for _, seg := range strings.Split(clean, "/") {
			if strings.HasPrefix(seg, ".") && seg != "" {
				return false
			}
		}
	}

	for _, pattern := range cfg.BlockedPatterns {
		if pattern != "" && strings.Contains(p, pattern) {
			return false
		}
	}

	if cfg.MaxPathDepth > 0 {
		depth := 0
		for _, seg := range strings.Split(clean, "/") {
			if seg != "" {
				depth++
			}
		}
		if depth > cfg.MaxPathDepth {
			return false
		}
	}

	return true
}
