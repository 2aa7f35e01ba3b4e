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

// Package pool provides the placeholder monitor.Pool components register
// against when no health-check/metrics surface is wired into the hosting
// application. This module has no HTTP health endpoint (see DESIGN.md): New
// only needs to satisfy the montps.Pool contract components are handed at
// Init, not back a real health-check registry.
package pool

import (
	"context"

	montps "github.com/nabbar/gsk/monitor/types"
)

type pool struct {
	ctx context.Context
}

// New returns a montps.Pool bound to ctx. Components may hold onto it for
// the lifetime of ctx but it does not itself expose any registration API.
func New(ctx context.Context) montps.Pool {
	return &pool{ctx: ctx}
}
