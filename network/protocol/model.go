/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package protocol defines the enumeration of network transport protocols
// shared across the module: dialers, listeners and syslog hooks all parse
// and format the same small set of names ("tcp", "udp", "unix", ...).
package protocol

// NetworkProtocol identifies a transport protocol usable with net.Dial /
// net.Listen. The zero value is NetworkEmpty.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

var names = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

// String returns the canonical lowercase name of the protocol, or an
// empty string if p is NetworkEmpty or not a registered protocol.
func (p NetworkProtocol) String() string {
	return names[p]
}

// Code returns the same canonical name as String. It exists so callers
// that think in terms of wire codes (map keys, config values) don't have
// to reach for String explicitly.
func (p NetworkProtocol) Code() string {
	return p.String()
}

// Int returns the protocol as an int, or 0 for NetworkEmpty / unknown values.
func (p NetworkProtocol) Int() int {
	if _, ok := names[p]; !ok {
		return 0
	}

	return int(p)
}

// Int64 returns the protocol as an int64, or 0 for NetworkEmpty / unknown values.
func (p NetworkProtocol) Int64() int64 {
	return int64(p.Int())
}

// Uint8 returns the protocol as a uint8, or 0 for NetworkEmpty / unknown values.
func (p NetworkProtocol) Uint8() uint8 {
	return uint8(p.Int())
}
