//go:build linux || darwin

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

package hooksyslog

import (
	"fmt"
	"os"

	libptc "github.com/nabbar/gsk/network/protocol"
)

// localSyslogPaths lists the Unix domain sockets the system syslog daemon
// conventionally listens on, checked in order.
var localSyslogPaths = []string{
	"/dev/log",
	"/var/run/syslog",
	"/var/run/log",
}

// systemSyslog locates the local syslog daemon's Unix domain socket, for
// hooks configured with an empty endpoint (opt.Host == "").
func systemSyslog() (libptc.NetworkProtocol, string, error) {
	for _, p := range localSyslogPaths {
		if fi, err := os.Stat(p); err == nil && fi.Mode()&os.ModeSocket != 0 {
			return libptc.NetworkUnixGram, p, nil
		}
	}

	return libptc.NetworkEmpty, "", fmt.Errorf("hooksyslog: no local syslog socket found")
}
