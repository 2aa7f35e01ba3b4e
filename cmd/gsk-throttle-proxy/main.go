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

// Command gsk-throttle-proxy is a transparent TCP proxy that rate-limits
// each direction of each connection independently, with a little
// per-second jitter added to the budget so every connection doesn't
// refill in lockstep.
package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
)

var (
	connectionsAccepted int64
	bytesReadTotal      int64
	bytesWrittenTotal   int64
)

func main() {
	var (
		bindTCP        int
		serverAddr     string
		uploadBase     int
		uploadNoise    int
		downloadBase   int
		downloadNoise  int
		halfShutdowns  bool
	)

	cmd := &cobra.Command{
		Use:   "gsk-throttle-proxy",
		Short: "a throttling transparent TCP proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(bindTCP, serverAddr, uploadBase, uploadNoise, downloadBase, downloadNoise, halfShutdowns)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&bindTCP, "bind-tcp", 8081, "TCP port to accept client connections on")
	flags.StringVar(&serverAddr, "server", "", "backend address to forward connections to (host:port)")
	flags.IntVar(&uploadBase, "upload-rate", 10*1024, "client-to-server bytes/second budget")
	flags.IntVar(&uploadNoise, "upload-noise", 1*1024, "random jitter added to the upload budget each second")
	flags.IntVar(&downloadBase, "download-rate", 100*1024, "server-to-client bytes/second budget")
	flags.IntVar(&downloadNoise, "download-noise", 10*1024, "random jitter added to the download budget each second")
	flags.BoolVar(&halfShutdowns, "half-shutdowns", true, "shut down each direction of a connection independently on EOF")
	_ = cmd.MarkFlagRequired("server")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(bindTCP int, serverAddr string, uploadBase, uploadNoise, downloadBase, downloadNoise int, halfShutdowns bool) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", bindTCP))
	if err != nil {
		return fmt.Errorf("gsk-throttle-proxy: error binding: %w", err)
	}
	defer ln.Close()

	for {
		client, err := ln.Accept()
		if err != nil {
			return err
		}
		atomic.AddInt64(&connectionsAccepted, 1)
		go proxyConnection(client, serverAddr, uploadBase, uploadNoise, downloadBase, downloadNoise, halfShutdowns)
	}
}

func proxyConnection(client net.Conn, serverAddr string, uploadBase, uploadNoise, downloadBase, downloadNoise int, halfShutdowns bool) {
	defer client.Close()

	server, err := net.Dial("tcp", serverAddr)
	if err != nil {
		return
	}
	defer server.Close()

	done := make(chan struct{}, 2)
	go func() {
		throttledCopy(server, client, uploadBase, uploadNoise, halfShutdowns, &bytesWrittenTotal)
		done <- struct{}{}
	}()
	go func() {
		throttledCopy(client, server, downloadBase, downloadNoise, halfShutdowns, &bytesReadTotal)
		done <- struct{}{}
	}()

	<-done
	<-done
}

// throttledCopy moves bytes from src to dst, never exceeding baseRate +
// rand(noise) bytes in any rolling one-second window. On src EOF it shuts
// down dst's write side (if halfShutdowns and dst is a *net.TCPConn) so
// the other direction can keep draining independently; otherwise it
// closes dst outright.
func throttledCopy(dst io.Writer, src io.Reader, baseRate, noise int, halfShutdowns bool, counter *int64) {
	if baseRate <= 0 {
		baseRate = 1
	}

	buf := make([]byte, 4096)
	budget := budgetFor(baseRate, noise)
	secondStart := time.Now()

	for {
		if budget <= 0 {
			sleepUntilNextSecond(secondStart)
			secondStart = time.Now()
			budget = budgetFor(baseRate, noise)
		}

		chunk := len(buf)
		if chunk > budget {
			chunk = budget
		}

		n, err := src.Read(buf[:chunk])
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return
			}
			atomic.AddInt64(counter, int64(n))
			budget -= n
		}
		if err != nil {
			shutdownOneSide(dst, halfShutdowns)
			return
		}
	}
}

func budgetFor(base, noise int) int {
	if noise <= 0 {
		return base
	}
	return base + rand.Intn(noise)
}

func sleepUntilNextSecond(secondStart time.Time) {
	elapsed := time.Since(secondStart)
	if remaining := time.Second - elapsed; remaining > 0 {
		time.Sleep(remaining)
	}
}

func shutdownOneSide(dst io.Writer, halfShutdowns bool) {
	if tc, ok := dst.(*net.TCPConn); ok && halfShutdowns {
		_ = tc.CloseWrite()
		return
	}
	if c, ok := dst.(net.Conn); ok {
		_ = c.Close()
	}
}
