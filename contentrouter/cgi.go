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

package contentrouter

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
)

var ErrNotMultipart = errors.New("contentrouter: request is not multipart/form-data")

// streamBodyReader adapts a stream.Stream's RawRead into an io.Reader,
// blocking the calling goroutine on ErrWouldBlock until more bytes
// arrive or the body completes. CGI decoding runs synchronously inside
// Dispatch, off the event loop goroutine that feeds the stream, so a
// tight retry loop here would deadlock; callers only reach this path
// once the body stream has already been fully buffered (Content-Length
// framed POST bodies finish parsing before being exposed as CGI vars).
type streamBodyReader struct {
	s stream.Stream
}

func (b streamBodyReader) Read(p []byte) (int, error) {
	for {
		n, err := b.s.RawRead(p)
		if err == stream.ErrWouldBlock {
			continue
		}
		return n, err
	}
}

// decodeCGIVars reads a multipart/form-data body to completion and
// returns its fields as CGIVar entries. A non-multipart request (or
// one with no body) yields ErrNotMultipart.
func decodeCGIVars(req *httpheader.Request, body stream.Stream) ([]CGIVar, error) {
	if body == nil || req.ContentType == nil {
		return nil, ErrNotMultipart
	}
	if req.ContentType.MediaType.Type != "multipart" || req.ContentType.MediaType.Subtype != "form-data" {
		return nil, ErrNotMultipart
	}
	boundary, ok := req.ContentType.Params["boundary"]
	if !ok || boundary == "" {
		return nil, ErrNotMultipart
	}

	mr := multipart.NewReader(streamBodyReader{s: body}, boundary)
	var vars []CGIVar

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}

		vars = append(vars, CGIVar{
			Name:        part.FormName(),
			Value:       data,
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
		})
	}

	return vars, nil
}
