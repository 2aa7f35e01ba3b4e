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

// Package socket defines the client-side contract shared by the module's
// network dialers: a reconnectable io.ReadWriteCloser wired to one of the
// protocols in network/protocol.
package socket

import (
	"context"
	"io"
)

// Client is a reconnectable network client. Connect may be called again
// after Close, or after a failed Write, to re-establish the underlying
// connection.
type Client interface {
	io.ReadWriteCloser

	// Connect dials the configured endpoint. Calling Connect on an already
	// connected Client redials, replacing the existing connection.
	Connect(ctx context.Context) error

	// RegisterFuncError registers a callback invoked with any error
	// encountered by a background operation the caller cannot observe
	// directly (e.g. a deferred reconnect). May be called with multiple
	// errors at once.
	RegisterFuncError(fct func(errs ...error))
}
