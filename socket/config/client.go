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

// Package config describes the dial-time configuration for a socket Client:
// which transport protocol to use, the endpoint address, and optional TLS.
package config

import (
	"crypto/tls"
	"net"

	"github.com/nabbar/gsk/errors"
	libptc "github.com/nabbar/gsk/network/protocol"
)

const (
	ErrorInvalidProtocol errors.CodeError = iota + errors.MinPkgSocket
	ErrorInvalidAddress
	ErrorEmptyAddress
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorInvalidProtocol)
	errors.RegisterIdFctMessage(ErrorInvalidProtocol, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorInvalidProtocol:
		return "invalid protocol for this client"
	case ErrorInvalidAddress:
		return "invalid address for this protocol"
	case ErrorEmptyAddress:
		return "address cannot be empty"
	}

	return ""
}

// ErrInvalidProtocol is returned by Client.Validate when Network does not
// name a protocol usable by the socket/client package.
var ErrInvalidProtocol = ErrorInvalidProtocol.Error(nil)

// TLSClient configures the optional TLS wrapping of a client connection.
// It is the zero value (disabled) by default.
type TLSClient struct {
	// Enabled switches the client from a plain to a TLS-wrapped connection.
	Enabled bool

	// ServerName overrides the TLS server name verified against the peer
	// certificate; defaults to the dial host when empty.
	ServerName string

	// Config is used as the base *tls.Config when Enabled is true. A nil
	// Config falls back to tls.Config{ServerName: ServerName}.
	Config *tls.Config
}

// Client describes how socket/client.New should dial a remote endpoint.
type Client struct {
	// Network selects the transport protocol (tcp, udp, unix, unixgram, ...).
	Network libptc.NetworkProtocol

	// Address is the dial address: "host:port" for tcp/udp, a filesystem
	// path for unix/unixgram.
	Address string

	// TLS optionally wraps the connection once dialed.
	TLS TLSClient
}

// Validate checks that Network is a protocol socket/client can dial and
// that Address has the shape that protocol expects.
func (c Client) Validate() error {
	switch c.Network {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		if c.Address == "" {
			return ErrorEmptyAddress.Error(nil)
		}
		if _, err := net.ResolveTCPAddr(c.Network.String(), c.Address); err != nil {
			return ErrorInvalidAddress.Error(err)
		}
	case libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6:
		if c.Address == "" {
			return ErrorEmptyAddress.Error(nil)
		}
		if _, err := net.ResolveUDPAddr(c.Network.String(), c.Address); err != nil {
			return ErrorInvalidAddress.Error(err)
		}
	case libptc.NetworkUnix, libptc.NetworkUnixGram:
		if c.Address == "" {
			return ErrorEmptyAddress.Error(nil)
		}
	default:
		return ErrorInvalidProtocol.Error(nil)
	}

	return nil
}
