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

// Package stream provides the polymorphic read/write endpoint every
// transport and memory source in this module is built on. A Stream wraps
// an io.ReadWriteCloser (typically a net.Conn) and exposes independent
// read and write halves, each with its own hook.Hook for readiness
// notification, so a consumer driven by an eventloop.Loop never blocks
// inside a callback.
//
// A background goroutine performs the actual blocking conn.Read calls and
// hands completed chunks to the stream's internal buffer.Buffer, posting a
// read-hook notification to the owning Loop; RawRead/RawReadBuffer then
// drain that buffer without blocking. Writes go straight to the
// underlying connection; when NeverPartialWrites is requested the stream
// loops internally until the whole slice lands or an error occurs, rather
// than exposing a partial write to the caller.
//
// Attach and AttachPair wire the read half of one stream to the write
// half of another (and back, for AttachPair), tearing down the receiving
// half as soon as the source half shuts down or errors.
package stream
