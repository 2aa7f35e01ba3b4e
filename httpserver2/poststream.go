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

package httpserver2

import (
	"io"
	"sync"

	"github.com/nabbar/gsk/bodyframing"
	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/hook"
	"github.com/nabbar/gsk/stream"
)

// postStream is the read-only stream.Stream exposed to the application
// as ServedRequest.Body. The server's receive loop feeds it decoded body
// bytes as they arrive off the transport; it reports io.EOF once the
// server marks it complete and every fed byte has been read out.
type postStream struct {
	mu sync.Mutex

	buf       buffer.Buffer
	complete  bool
	err       error
	readState stream.HalfState

	readHook  hook.Hook
	writeHook hook.Hook

	threshold   int64
	drainWaiter func()
}

func newPostStream(threshold int64) *postStream {
	return &postStream{
		buf:       buffer.New(),
		readState: stream.Ready,
		readHook:  hook.New(),
		writeHook: hook.New(),
		threshold: threshold,
	}
}

func (p *postStream) IsReadable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readState == stream.Ready
}

func (p *postStream) IsWritable() bool         { return false }
func (p *postStream) NeverBlocksRead() bool    { return true }
func (p *postStream) NeverBlocksWrite() bool   { return true }
func (p *postStream) NeverPartialWrites() bool { return true }

func (p *postStream) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *postStream) RawRead(dst []byte) (int, error) {
	p.mu.Lock()
	if p.buf.Size() == 0 {
		n, err := p.finishLocked()
		p.mu.Unlock()
		return n, err
	}
	n, _ := p.buf.Read(dst)
	fn := p.takeDrainWaiterLocked()
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
	return n, nil
}

func (p *postStream) RawReadBuffer(out buffer.Buffer) (int64, error) {
	p.mu.Lock()
	if p.buf.Size() == 0 {
		n, err := p.finishLocked()
		p.mu.Unlock()
		return int64(n), err
	}
	n := out.Transfer(p.buf, p.buf.Size())
	fn := p.takeDrainWaiterLocked()
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
	return n, nil
}

// finishLocked must be called with mu held.
func (p *postStream) finishLocked() (int, error) {
	if p.readState == stream.Errored {
		return 0, p.err
	}
	if p.complete {
		p.readState = stream.ShutDown
		return 0, io.EOF
	}
	return 0, stream.ErrWouldBlock
}

// takeDrainWaiterLocked must be called with mu held; it returns (and
// clears) the pending drain callback once the buffer has fallen back
// under threshold.
func (p *postStream) takeDrainWaiterLocked() func() {
	if p.drainWaiter != nil && p.buf.Size() < p.threshold {
		fn := p.drainWaiter
		p.drainWaiter = nil
		return fn
	}
	return nil
}

func (p *postStream) RawWrite(src []byte) (int, error) { return 0, stream.ErrShutdown }
func (p *postStream) RawWriteBuffer(in buffer.Buffer) (int64, error) {
	return 0, stream.ErrShutdown
}

func (p *postStream) ReadHook() hook.Hook  { return p.readHook }
func (p *postStream) WriteHook() hook.Hook { return p.writeHook }

func (p *postStream) NotifyReadShutdown(err error) {
	p.setErrored(err)
}

func (p *postStream) ShutdownRead() error {
	p.setErrored(nil)
	return nil
}

func (p *postStream) ShutdownWrite() error { return nil }

// size reports the currently buffered, unread byte count.
func (p *postStream) size() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Size()
}

// feed decodes as much of in as d currently allows into p's buffer,
// returning whether the body is now fully decoded and the resulting
// buffered size (for the caller's backpressure check).
func (p *postStream) feed(in buffer.Buffer, d *bodyframing.Decoder, closed bool) (done bool, size int64, err error) {
	p.mu.Lock()
	done, err = d.Feed(in, p.buf, closed)
	size = p.buf.Size()
	p.mu.Unlock()

	if err != nil {
		p.setErrored(err)
		return done, size, err
	}
	if size > 0 {
		p.readHook.Notify()
	}
	return done, size, nil
}

// setDrainWaiter arranges for fn to run the next time a read drops the
// buffered size back under threshold. Used to resume pulling more bytes
// off the transport once backpressure was applied.
func (p *postStream) setDrainWaiter(fn func()) {
	p.mu.Lock()
	p.drainWaiter = fn
	p.mu.Unlock()
}

func (p *postStream) setErrored(err error) {
	p.mu.Lock()
	if p.readState == stream.ShutDown || p.readState == stream.Errored {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.readState = stream.Errored
		p.err = err
	} else {
		p.readState = stream.ShutDown
	}
	p.mu.Unlock()
	p.readHook.NotifyShutdown()
}

// markComplete records that no further body bytes will arrive. Already
// buffered bytes remain readable; RawRead/RawReadBuffer report io.EOF
// once they are drained.
func (p *postStream) markComplete() {
	p.mu.Lock()
	p.complete = true
	p.mu.Unlock()
	p.readHook.Notify()
}
