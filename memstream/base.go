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

package memstream

import (
	"sync"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/hook"
	"github.com/nabbar/gsk/stream"
)

// base implements the half-state bookkeeping and hook wiring shared by
// all four memory stream variants. Embedders override RawRead(Buffer)/
// RawWrite(Buffer) as needed; base's defaults report the half as
// NotAvailable.
type base struct {
	mu sync.Mutex

	readState  stream.HalfState
	writeState stream.HalfState
	err        error

	readHook  hook.Hook
	writeHook hook.Hook

	closeReadOnce  sync.Once
	closeWriteOnce sync.Once
}

func newBase() base {
	return base{
		readHook:  hook.New(),
		writeHook: hook.New(),
	}
}

func (b *base) IsReadable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readState == stream.Ready
}

func (b *base) IsWritable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writeState == stream.Ready
}

func (b *base) NeverBlocksRead() bool    { return true }
func (b *base) NeverBlocksWrite() bool   { return true }
func (b *base) NeverPartialWrites() bool { return true }

func (b *base) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *base) ReadHook() hook.Hook  { return b.readHook }
func (b *base) WriteHook() hook.Hook { return b.writeHook }

func (b *base) NotifyReadShutdown(err error) {
	b.mu.Lock()
	if b.readState == stream.ShutDown || b.readState == stream.Errored {
		b.mu.Unlock()
		return
	}
	if err != nil {
		b.readState = stream.Errored
		b.err = err
	} else {
		b.readState = stream.ShutDown
	}
	b.mu.Unlock()
	b.readHook.NotifyShutdown()
}

func (b *base) ShutdownRead() error {
	b.closeReadOnce.Do(func() {
		b.mu.Lock()
		if b.readState != stream.Errored {
			b.readState = stream.ShutDown
		}
		b.mu.Unlock()
		b.readHook.NotifyShutdown()
	})
	return nil
}

func (b *base) ShutdownWrite() error {
	b.closeWriteOnce.Do(func() {
		b.mu.Lock()
		if b.writeState != stream.Errored {
			b.writeState = stream.ShutDown
		}
		b.mu.Unlock()
		b.writeHook.NotifyShutdown()
	})
	return nil
}

// drainToThrowAway empties src, releasing any foreign fragments it owns.
func drainToThrowAway(b buffer.Buffer) {
	b.Destruct()
}
