/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package semaphore bounds the number of concurrent workers a caller may run
// at once, context-aware so a cancelled parent releases every blocked
// acquirer. It backs ioutils/aggregator's async callback fan-out.
package semaphore

import (
	"context"
	"runtime"
)

// Semaphore limits concurrent worker goroutines. A negative weight (built
// from a non-positive nbrSimultaneous) means unlimited concurrency.
type Semaphore interface {
	// Weighted returns the configured concurrency limit, or -1 if unlimited.
	Weighted() int64

	// NewWorker blocks until a slot is available or the semaphore's context
	// is done, in which case it returns the context's error.
	NewWorker() error
	// NewWorkerTry acquires a slot without blocking, returning false if none
	// is free.
	NewWorkerTry() bool
	// DeferWorker releases a slot acquired by NewWorker/NewWorkerTry.
	DeferWorker()

	// DeferMain cancels the semaphore's context, releasing every pending or
	// future NewWorker call.
	DeferMain()
	// Err reports the semaphore's context error, nil while still active.
	Err() error
	// WaitAll blocks until every currently acquired worker has called
	// DeferWorker, or the semaphore's context is done.
	WaitAll() error
}

// New builds a Semaphore bound to ctx. nbrSimultaneous > 0 caps concurrency
// at that count; 0 caps it at MaxSimultaneous(); a negative value disables
// the cap entirely. withProgress is accepted for call-site compatibility
// with the teacher's progress-bar-aware constructor but has no effect here.
func New(ctx context.Context, nbrSimultaneous int, withProgress bool) Semaphore {
	return newSemaphore(ctx, nbrSimultaneous)
}

// NewSemaphoreWithContext builds a Semaphore bound to ctx without the
// progress-bar flag, for callers that never need it.
func NewSemaphoreWithContext(ctx context.Context, nbrSimultaneous int) Semaphore {
	return newSemaphore(ctx, nbrSimultaneous)
}

// MaxSimultaneous returns the default concurrency cap used when New is
// called with nbrSimultaneous == 0: the number of logical CPUs available.
func MaxSimultaneous() int {
	return runtime.GOMAXPROCS(0)
}
