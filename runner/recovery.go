/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package runner holds the small, dependency-free helpers shared by every
// background worker in this module (hooks, aggregators, the startStop
// lifecycle wrapper). It must not import anything that itself runs in a
// goroutine recovered by RecoveryCaller, to avoid import cycles.
package runner

import (
	"fmt"
	"log"
	"runtime/debug"
)

// RecoveryCaller logs a recovered panic without re-panicking. Callers invoke
// it directly from a deferred recover() so a single goroutine's crash does
// not bring down the process; caller identifies the failing goroutine (e.g.
// "pkg/type/method"), recovered is the value returned by recover(), and msg
// adds optional context (such as a file path) to the log line.
//
// recovered == nil is a no-op: it lets call sites write
// "defer RecoveryCaller(name, recover())" unconditionally.
func RecoveryCaller(caller string, recovered interface{}, msg ...string) {
	if recovered == nil {
		return
	}

	extra := ""
	if len(msg) > 0 {
		extra = " (" + fmt.Sprint(joinMsg(msg)) + ")"
	}

	log.Printf("recovered panic in %s%s: %v\n%s", caller, extra, recovered, debug.Stack())
}

func joinMsg(msg []string) string {
	out := msg[0]
	for _, m := range msg[1:] {
		out += ", " + m
	}
	return out
}
