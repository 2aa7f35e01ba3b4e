/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package startStop provides a small, thread-safe start/stop/restart
// lifecycle wrapper used by every long-lived component in this module (the
// event loop, the HTTP server, the URL transfer driver): each embeds a
// StartStop built from its own start/stop functions instead of hand-rolling
// its own running flag and mutex.
package startStop

import (
	"context"
	"time"
)

// FuncStart is invoked by Start/Restart. It must block until ctx is
// cancelled or the component's own work is done, and return promptly once
// ctx is cancelled.
type FuncStart func(ctx context.Context) error

// FuncStop is invoked by Stop/Restart after the running context has been
// cancelled, to release any resource the start function does not own.
type FuncStop func(ctx context.Context) error

// StartStop is a restartable, thread-safe lifecycle handle.
type StartStop interface {
	// Start runs the start function in a new goroutine and returns once it
	// has been launched. Calling Start while already running is a no-op
	// that returns nil.
	Start(ctx context.Context) error

	// Stop cancels the running start function's context, waits for it to
	// return, then invokes the stop function. Calling Stop while not
	// running is a no-op that returns nil.
	Stop(ctx context.Context) error

	// Restart stops then starts the component. It is safe to call
	// concurrently with Start/Stop.
	Restart(ctx context.Context) error

	// IsRunning reports whether the start function is currently active.
	IsRunning() bool

	// Uptime returns the duration since the last successful Start, or zero
	// if not running.
	Uptime() time.Duration
}

// New returns a StartStop wrapping the given start/stop functions. Either
// may be nil: a nil start function makes Start return an error instead of
// panicking; a nil stop function makes Stop a pure cancellation.
func New(start FuncStart, stop FuncStop) StartStop {
	return &runner{
		fnStart: start,
		fnStop:  stop,
	}
}
