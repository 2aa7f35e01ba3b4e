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

package eventloop

import (
	"context"
	"time"
)

// Source is a cancellable timer or idle registration. Cancel is safe to
// call more than once and safe to call from any goroutine.
type Source interface {
	Cancel()
}

// Loop is a single-threaded cooperative scheduler. All work posted to it —
// readiness callbacks, timers, idle functions — runs serially on the same
// goroutine that called Run, in the order it becomes due.
type Loop interface {
	// Post schedules fn to run on the loop's dispatch goroutine as soon as
	// it is next idle. Safe to call from any goroutine, including from
	// inside a callback already running on the loop.
	Post(fn func())

	// AddTimer schedules fn to run after d. If repeat is true, fn is
	// rescheduled every d after it returns until the Source is cancelled.
	AddTimer(d time.Duration, repeat bool, fn func()) Source

	// AddIdle registers fn to run whenever the loop has no posted work or
	// due timer ready. fn returns true to be invoked again the next time
	// the loop is idle, or false to remove itself.
	AddIdle(fn func() bool) Source

	// Run blocks, dispatching posted work, due timers, and idle sources,
	// until Quit is called or ctx is cancelled. It returns ctx.Err() in
	// the latter case and nil otherwise.
	Run(ctx context.Context) error

	// Quit causes a running Run to return nil as soon as it is next idle.
	// Safe to call before Run, in which case the next Run returns
	// immediately.
	Quit()

	// Now returns the loop's current monotonic time. All timer
	// scheduling is computed against this clock.
	Now() time.Time
}

// New returns a Loop that is not yet running.
func New() Loop {
	return newLoop()
}
