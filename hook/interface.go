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

import "errors"

// State is one position in the Hook lifecycle.
type State uint8

const (
	Untrapped State = iota
	Trapped
	ShuttingDown
	ShutDown
)

func (s State) String() string {
	switch s {
	case Untrapped:
		return "untrapped"
	case Trapped:
		return "trapped"
	case ShuttingDown:
		return "shutting-down"
	case ShutDown:
		return "shut-down"
	default:
		return "unknown"
	}
}

// ErrAlreadyTrapped is returned by Trap when a trap is already installed.
var ErrAlreadyTrapped = errors.New("hook: already trapped")

// FuncEvent is invoked by Notify while the hook is Trapped.
type FuncEvent func(data interface{})

// FuncShutdown is invoked at most once, by the first NotifyShutdown call.
type FuncShutdown func(data interface{})

// FuncDestroy releases the user-data value. It runs exactly once, on
// Untrap or on the hook's own shutdown teardown, whichever comes first.
type FuncDestroy func(data interface{})

// Hook is a single-subscriber event handle with terminal shutdown.
//
// Invariants: at most one active trap at a time; Untrap always runs the
// data destructor; NotifyShutdown is idempotent and its callback fires at
// most once.
type Hook interface {
	// Trap installs the event/shutdown callbacks and user data. It fails
	// with ErrAlreadyTrapped if a trap is already installed, or if the
	// hook has already reached ShutDown.
	Trap(onEvent FuncEvent, onShutdown FuncShutdown, data interface{}, destroy FuncDestroy) error

	// Untrap removes the installed callbacks, runs the data destructor,
	// and returns the hook to Untrapped. It is a no-op if not trapped.
	Untrap()

	// SetPoll enables or disables event delivery without untrapping: a
	// disabled hook still accepts Notify calls but does not invoke the
	// event callback until re-enabled.
	SetPoll(enabled bool)

	// Notify fires the event callback if the hook is Trapped and polling
	// is enabled. It is a no-op otherwise.
	Notify()

	// NotifyShutdown transitions the hook to ShutDown and fires the
	// shutdown callback exactly once, on the first call. Later calls are
	// no-ops.
	NotifyShutdown()

	// State reports the current lifecycle state.
	State() State

	// IsAvailable reports whether the hook can still accept a Trap (i.e.
	// it has not reached ShutDown).
	IsAvailable() bool

	// WillNotHappenAgain reports whether Notify can no longer deliver an
	// event: true once the hook has entered ShuttingDown or ShutDown.
	WillNotHappenAgain() bool
}

// New returns an Untrapped Hook.
func New() Hook {
	return newHook()
}
