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
	"container/heap"
	"context"
	"sync"
	"time"
)

func newLoop() *loop {
	return &loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

type idleEntry struct {
	fn        func() bool
	cancelled bool
}

func (i *idleEntry) Cancel() {
	i.cancelled = true
}

type loop struct {
	mu sync.Mutex

	postQ  []func()
	timers timerHeap
	idle   []*idleEntry

	wake     chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
}

func (l *loop) Now() time.Time {
	return time.Now()
}

func (l *loop) nudge() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.postQ = append(l.postQ, fn)
	l.mu.Unlock()
	l.nudge()
}

func (l *loop) AddTimer(d time.Duration, repeat bool, fn func()) Source {
	e := &timerEntry{
		due:    time.Now().Add(d),
		period: d,
		repeat: repeat,
		fn:     fn,
	}
	l.mu.Lock()
	heap.Push(&l.timers, e)
	l.mu.Unlock()
	l.nudge()
	return e
}

func (l *loop) AddIdle(fn func() bool) Source {
	e := &idleEntry{fn: fn}
	l.mu.Lock()
	l.idle = append(l.idle, e)
	l.mu.Unlock()
	l.nudge()
	return e
}

func (l *loop) Quit() {
	l.quitOnce.Do(func() {
		close(l.quit)
	})
}

// Run processes one unit of work per iteration: a posted function, then a
// due timer, then one idle source, in that priority order, so readiness
// callbacks and timers are never starved by a busy idle source. When none
// is ready it blocks until one becomes due, Quit is called, or ctx ends.
func (l *loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return nil
		default:
		}

		if fn, ok := l.popPosted(); ok {
			fn()
			continue
		}

		if fn, ok := l.popDueTimer(); ok {
			fn()
			continue
		}

		if fn, ok := l.popIdle(); ok {
			fn()
			continue
		}

		if err := l.waitForWork(ctx); err != nil {
			return err
		}
		if l.quitRequested() {
			return nil
		}
	}
}

func (l *loop) quitRequested() bool {
	select {
	case <-l.quit:
		return true
	default:
		return false
	}
}

func (l *loop) popPosted() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.postQ) == 0 {
		return nil, false
	}
	fn := l.postQ[0]
	l.postQ = l.postQ[1:]
	return fn, true
}

func (l *loop) popDueTimer() (func(), bool) {
	l.mu.Lock()
	if l.timers.Len() == 0 || l.timers[0].due.After(time.Now()) {
		l.mu.Unlock()
		return nil, false
	}
	e := heap.Pop(&l.timers).(*timerEntry)
	l.mu.Unlock()

	return func() {
		if e.cancel {
			return
		}
		e.fn()
		if e.repeat && !e.cancel {
			e.due = time.Now().Add(e.period)
			l.mu.Lock()
			heap.Push(&l.timers, e)
			l.mu.Unlock()
		}
	}, true
}

func (l *loop) popIdle() (func(), bool) {
	l.mu.Lock()
	if len(l.idle) == 0 {
		l.mu.Unlock()
		return nil, false
	}
	e := l.idle[0]
	l.idle = l.idle[1:]
	l.mu.Unlock()

	return func() {
		if e.cancelled {
			return
		}
		if e.fn() {
			l.mu.Lock()
			l.idle = append(l.idle, e)
			l.mu.Unlock()
		}
	}, true
}

func (l *loop) waitForWork(ctx context.Context) error {
	l.mu.Lock()
	var timerC <-chan time.Time
	var t *time.Timer
	if l.timers.Len() > 0 {
		d := l.timers[0].due.Sub(time.Now())
		if d < 0 {
			d = 0
		}
		t = time.NewTimer(d)
		timerC = t.C
	}
	l.mu.Unlock()

	defer func() {
		if t != nil {
			t.Stop()
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.quit:
		return nil
	case <-l.wake:
		return nil
	case <-timerC:
		return nil
	}
}
