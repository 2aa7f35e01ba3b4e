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

package semaphore

import (
	"context"
	"sync"

	libwgt "golang.org/x/sync/semaphore"
)

// sem implements Semaphore. A positive weight delegates to
// golang.org/x/sync/semaphore.Weighted; a negative weight (unlimited) falls
// back to a sync.WaitGroup, since a weighted semaphore has no "unbounded"
// setting of its own.
type sem struct {
	ctx    context.Context
	cancel context.CancelFunc

	weight int64
	w      *libwgt.Weighted
	wg     sync.WaitGroup
}

func newSemaphore(ctx context.Context, nbrSimultaneous int) Semaphore {
	c, cancel := context.WithCancel(ctx)

	s := &sem{ctx: c, cancel: cancel}

	switch {
	case nbrSimultaneous < 0:
		s.weight = -1
	case nbrSimultaneous == 0:
		s.weight = int64(MaxSimultaneous())
		s.w = libwgt.NewWeighted(s.weight)
	default:
		s.weight = int64(nbrSimultaneous)
		s.w = libwgt.NewWeighted(s.weight)
	}

	return s
}

func (o *sem) Weighted() int64 {
	return o.weight
}

func (o *sem) NewWorker() error {
	if o.weight < 0 {
		o.wg.Add(1)
		return nil
	}

	return o.w.Acquire(o.ctx, 1)
}

func (o *sem) NewWorkerTry() bool {
	if o.weight < 0 {
		o.wg.Add(1)
		return true
	}

	return o.w.TryAcquire(1)
}

func (o *sem) DeferWorker() {
	if o.weight < 0 {
		o.wg.Done()
		return
	}

	o.w.Release(1)
}

func (o *sem) DeferMain() {
	o.cancel()
}

func (o *sem) Err() error {
	return o.ctx.Err()
}

// WaitAll blocks by re-acquiring the full weight, which only succeeds once
// every in-flight worker has released its slot, then gives it back.
func (o *sem) WaitAll() error {
	if o.weight < 0 {
		o.wg.Wait()
		return nil
	}

	if err := o.w.Acquire(o.ctx, o.weight); err != nil {
		return err
	}

	o.w.Release(o.weight)
	return nil
}
