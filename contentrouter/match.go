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

// slot identifies one of the eight fixed-priority match tiers. Handlers
// are stored per slot, in registration order within it (subject to
// Action at insertion time); a slot is a coarser key than ContentId —
// many ContentId values with the same non-empty axes fall in the same
// slot and are disambiguated by exact field comparison at dispatch
// time, see matches below.
type slot uint8

const (
	slotUAPathHost slot = iota
	slotUAHost
	slotUAPath
	slotUAOnly
	slotPathHost
	slotHostOnly
	slotPathOnly
	slotGlobal
	slotCount
)

// slotOf reports which slot a ContentId belongs to, based solely on
// which axes are non-empty. path_prefix/path_suffix count as "path"
// for slot purposes, matching path itself.
func slotOf(id ContentId) slot {
	hasUA := id.UserAgentPrefix != ""
	hasHost := id.Host != ""
	hasPath := id.Path != "" || id.PathPrefix != "" || id.PathSuffix != ""

	switch {
	case hasUA && hasPath && hasHost:
		return slotUAPathHost
	case hasUA && hasHost:
		return slotUAHost
	case hasUA && hasPath:
		return slotUAPath
	case hasUA:
		return slotUAOnly
	case hasPath && hasHost:
		return slotPathHost
	case hasHost:
		return slotHostOnly
	case hasPath:
		return slotPathOnly
	default:
		return slotGlobal
	}
}

// matches reports whether a registered ContentId applies to an
// incoming request's host, user-agent and path.
func matches(id ContentId, host, userAgent, path string) bool {
	if id.Host != "" && id.Host != host {
		return false
	}
	if id.UserAgentPrefix != "" && !strings.HasPrefix(userAgent, id.UserAgentPrefix) {
		return false
	}
	if id.Path != "" && id.Path != path {
		return false
	}
	if id.PathPrefix != "" && !strings.HasPrefix(path, id.PathPrefix) {
		return false
	}
	if id.PathSuffix != "" && !strings.HasSuffix(path, id.PathSuffix) {
		return false
	}
	return true
}
