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

package hook

import (
	"sync"

	libatm "github.com/nabbar/gsk/atomic"
)

func newHook() *model {
	m := &model{
		state: libatm.NewValueDefault[State](Untrapped, Untrapped),
		poll:  libatm.NewValueDefault[bool](true, true),
	}
	return m
}

type model struct {
	mu sync.Mutex

	state libatm.Value[State]
	poll  libatm.Value[bool]

	onEvent    FuncEvent
	onShutdown FuncShutdown
	data       interface{}
	destroy    FuncDestroy
}

func (m *model) State() State {
	return m.state.Load()
}

func (m *model) IsAvailable() bool {
	return m.state.Load() != ShutDown
}

func (m *model) WillNotHappenAgain() bool {
	switch m.state.Load() {
	case ShuttingDown, ShutDown:
		return true
	default:
		return false
	}
}

func (m *model) Trap(onEvent FuncEvent, onShutdown FuncShutdown, data interface{}, destroy FuncDestroy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state.Load() {
	case Trapped:
		return ErrAlreadyTrapped
	case ShuttingDown, ShutDown:
		return ErrAlreadyTrapped
	}

	m.onEvent = onEvent
	m.onShutdown = onShutdown
	m.data = data
	m.destroy = destroy
	m.state.Store(Trapped)

	return nil
}

func (m *model) Untrap() {
	m.mu.Lock()

	if m.state.Load() != Trapped {
		m.mu.Unlock()
		return
	}

	destroy := m.destroy
	data := m.data

	m.onEvent = nil
	m.onShutdown = nil
	m.data = nil
	m.destroy = nil
	m.state.Store(Untrapped)

	m.mu.Unlock()

	if destroy != nil {
		destroy(data)
	}
}

func (m *model) SetPoll(enabled bool) {
	m.poll.Store(enabled)
}

func (m *model) Notify() {
	m.mu.Lock()
	if m.state.Load() != Trapped || !m.poll.Load() {
		m.mu.Unlock()
		return
	}
	fn := m.onEvent
	data := m.data
	m.mu.Unlock()

	if fn != nil {
		fn(data)
	}
}

func (m *model) NotifyShutdown() {
	m.mu.Lock()

	switch m.state.Load() {
	case ShuttingDown, ShutDown:
		m.mu.Unlock()
		return
	}

	m.state.Store(ShuttingDown)
	fn := m.onShutdown
	destroy := m.destroy
	data := m.data
	m.mu.Unlock()

	if fn != nil {
		fn(data)
	}

	m.mu.Lock()
	m.onEvent = nil
	m.onShutdown = nil
	m.data = nil
	m.destroy = nil
	m.state.Store(ShutDown)
	m.mu.Unlock()

	if destroy != nil {
		destroy(data)
	}
}
