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

// Command gsk-webserver serves static files and directory trees over
// plain HTTP, with a configurable MIME-type mapping and default type.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nabbar/gsk/contentrouter"
	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/httpserver2"
	"github.com/nabbar/gsk/stream"
)

func main() {
	var (
		bindTCP      int
		mimeRules    []string
		defaultMime  string
		locations    []string
	)

	cmd := &cobra.Command{
		Use:   "gsk-webserver",
		Short: "serve static files and directory trees over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(bindTCP, mimeRules, defaultMime, locations)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&bindTCP, "bind-tcp", 8080, "TCP port to listen on")
	flags.StringArrayVar(&mimeRules, "mime", nil, "PREFIX*SUFFIX=TYPE/SUBTYPE mapping (repeatable)")
	flags.StringVar(&defaultMime, "default-mime", "", "TYPE/SUBTYPE served when no --mime rule matches")
	flags.StringArrayVar(&locations, "location", nil, "URI_PATH=FS_PATH directory tree to serve (repeatable)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(bindTCP int, mimeRules []string, defaultMime string, locations []string) error {
	router := contentrouter.New()

	for _, rule := range mimeRules {
		pattern, typeSubtype, ok := strings.Cut(rule, "=")
		if !ok {
			return fmt.Errorf("gsk-webserver: malformed --mime %q, want PREFIX*SUFFIX=TYPE/SUBTYPE", rule)
		}
		star := strings.IndexByte(pattern, '*')
		if star < 0 {
			return fmt.Errorf("gsk-webserver: --mime pattern %q needs a '*'", pattern)
		}
		typ, subtype, ok := strings.Cut(typeSubtype, "/")
		if !ok {
			return fmt.Errorf("gsk-webserver: missing '/' in --mime type/subtype %q", typeSubtype)
		}
		router.SetMimeType(pattern[:star], pattern[star+1:], typ+"/"+subtype)
	}

	if defaultMime != "" {
		typ, subtype, ok := strings.Cut(defaultMime, "/")
		if !ok {
			return fmt.Errorf("gsk-webserver: missing '/' in --default-mime %q", defaultMime)
		}
		router.SetDefaultMimeType(typ + "/" + subtype)
	}

	for _, loc := range locations {
		uriPath, fsPath, ok := strings.Cut(loc, "=")
		if !ok {
			return fmt.Errorf("gsk-webserver: malformed --location %q, want URI_PATH=FS_PATH", loc)
		}
		if err := router.AddFile(uriPath, fsPath, contentrouter.FileDirTree); err != nil {
			return fmt.Errorf("gsk-webserver: error adding location %s: %w", loc, err)
		}
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", bindTCP))
	if err != nil {
		return fmt.Errorf("gsk-webserver: error binding: %w", err)
	}
	defer ln.Close()

	loop := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go serveConnection(loop, conn, router)
	}
}

func serveConnection(loop eventloop.Loop, conn net.Conn, router *contentrouter.Router) {
	transport := stream.New(loop, conn)
	srv := httpserver2.New(loop, transport, httpserver2.Config{})

	avail := make(chan struct{}, 1)
	var closeAvail sync.Once
	_ = srv.HasRequestHook().Trap(func(interface{}) {
		select {
		case avail <- struct{}{}:
		default:
		}
	}, func(interface{}) {
		closeAvail.Do(func() { close(avail) })
	}, nil, nil)

	for range avail {
		for {
			sr, ok := srv.Next()
			if !ok {
				break
			}
			resp, content := router.Dispatch(sr.Req, sr.Body)
			_ = srv.Respond(sr, resp, content)
		}
	}
}
