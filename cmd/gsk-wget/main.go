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

// Command gsk-wget fetches a single URL and writes its body to stdout or
// a file, the way a netcat-like exposition tool would: one transfer, no
// retries, a redirect reported rather than followed.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nabbar/gsk/certificates"
	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/httpbackend"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/ioutils/ioprogress"
	"github.com/nabbar/gsk/stream"
	"github.com/nabbar/gsk/urlmodel"
	"github.com/nabbar/gsk/urltransfer"
)

type rawReader struct{ s stream.Stream }

func (r rawReader) Read(p []byte) (int, error) { return r.s.RawRead(p) }

func setMiscHeader(req *httpheader.Request, key, value string) {
	if req.Misc == nil {
		req.Misc = httpheader.NewMiscFields()
	}
	req.Misc.Set(key, value)
}

func main() {
	var (
		useSSL       bool
		uploadFile   string
		uploadData   string
		userAgent    string
		extraHeaders []string
		timeoutMS    int
		output       string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "gsk-wget URL",
		Short: "fetch a URL over HTTP or HTTPS and print its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], useSSL, uploadFile, uploadData, userAgent, extraHeaders, timeoutMS, output, showProgress)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&useSSL, "ssl", false, "use TLS even if the scheme does not require it")
	flags.StringVar(&uploadFile, "upload-file", "", "upload the contents of FILENAME")
	flags.StringVar(&uploadData, "upload-data", "", "upload the given string")
	flags.StringVar(&userAgent, "user-agent", "", "set the HTTP User-Agent header")
	flags.StringArrayVar(&extraHeaders, "add-http-header", nil, "add a raw 'Key: value' header line (repeatable)")
	flags.IntVar(&timeoutMS, "timeout", 0, "transfer timeout, in milliseconds")
	flags.StringVarP(&output, "output", "o", "", "write the body to FILENAME instead of stdout")
	flags.BoolVar(&showProgress, "progress", false, "print a running byte count of the body to stderr")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(rawURL string, useSSL bool, uploadFile, uploadData, userAgent string, extraHeaders []string, timeoutMS int, output string, showProgress bool) error {
	u, err := urlmodel.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("gsk-wget: error parsing url %s: %w", rawURL, err)
	}

	opts := httpbackend.Options{}
	if useSSL {
		opts.TLS = certificates.New()
	}
	httpbackend.Register(opts)

	loop := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	var modifiers []urltransfer.RequestModifier
	if userAgent != "" {
		modifiers = append(modifiers, func(req *httpheader.Request) {
			setMiscHeader(req, "User-Agent", userAgent)
		})
	}
	for _, line := range extraHeaders {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("gsk-wget: malformed HTTP header line (missing ':'): %q", line)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		modifiers = append(modifiers, func(req *httpheader.Request) {
			setMiscHeader(req, key, value)
		})
	}

	var upload urltransfer.UploadFactory
	switch {
	case uploadData != "":
		upload = urltransfer.NewPacketUpload([]byte(uploadData))
	case uploadFile != "":
		data, err := os.ReadFile(uploadFile)
		if err != nil {
			return fmt.Errorf("gsk-wget: error reading upload data %s: %w", uploadFile, err)
		}
		upload = urltransfer.NewPacketUpload(data)
	}

	done := make(chan struct{})
	var (
		result  urltransfer.Result
		content stream.Stream
		xferErr error
	)

	cfg := urltransfer.Config{
		Loop:            loop,
		FollowRedirects: false,
		Upload:          upload,
		Modifiers:       modifiers,
		Done: func(r urltransfer.Result, body stream.Stream, err error) {
			result, content, xferErr = r, body, err
			close(done)
		},
	}
	if timeoutMS > 0 {
		cfg.Timeout = time.Duration(timeoutMS) * time.Millisecond
	}

	tr := urltransfer.New(u, cfg)
	if err := tr.Start(); err != nil {
		return fmt.Errorf("gsk-wget: error starting URL transfer: %w", err)
	}
	<-done

	switch result {
	case urltransfer.Success:
		return writeBody(content, output, showProgress)
	case urltransfer.Redirect:
		fmt.Printf("REDIRECT -> %s\n", tr.URL().String())
		return nil
	default:
		if xferErr != nil {
			return fmt.Errorf("gsk-wget: %s: %w", result, xferErr)
		}
		return fmt.Errorf("gsk-wget: %s", result)
	}
}

func writeBody(content stream.Stream, output string, showProgress bool) error {
	if content == nil {
		return nil
	}

	out := os.Stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("gsk-wget: error creating %s: %w", output, err)
		}
		defer f.Close()
		out = f
	}

	var dst io.Writer = out
	if showProgress {
		pw := ioprogress.NewWriteCloser(nopCloser{out})
		var total int64
		pw.RegisterFctIncrement(func(n int64) {
			total += n
			fmt.Fprintf(os.Stderr, "\r%d bytes", total)
		})
		defer func() {
			fmt.Fprintln(os.Stderr)
			_ = pw.Close()
		}()
		dst = pw
	}

	_, err := io.Copy(dst, rawReader{content})
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
