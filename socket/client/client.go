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

// Package client dials the protocol-agnostic socket.Client contract over
// net.Dial, optionally wrapped in TLS.
package client

import (
	"context"
	"crypto/tls"
	"net"
	"sync"

	libsck "github.com/nabbar/gsk/socket"
	sckcfg "github.com/nabbar/gsk/socket/config"
)

type client struct {
	mu  sync.Mutex
	cfg sckcfg.Client
	tls *tls.Config
	cnn net.Conn
	fct func(errs ...error)
}

// New validates cfg and returns a Client ready to Connect. tc, when
// non-nil, is used as the base TLS config when cfg.TLS.Enabled is set;
// otherwise cfg.TLS.Config (or a default derived from cfg.TLS.ServerName)
// is used.
func New(cfg sckcfg.Client, tc *tls.Config) (libsck.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &client{cfg: cfg, tls: tc}, nil
}

func (o *client) dialer() net.Dialer {
	return net.Dialer{}
}

func (o *client) tlsConfig() *tls.Config {
	if o.tls != nil {
		return o.tls
	} else if o.cfg.TLS.Config != nil {
		return o.cfg.TLS.Config
	}

	return &tls.Config{ServerName: o.cfg.TLS.ServerName}
}

// Connect dials cfg.Network/cfg.Address, replacing any existing connection.
func (o *client) Connect(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cnn != nil {
		_ = o.cnn.Close()
		o.cnn = nil
	}

	var (
		cnn net.Conn
		err error
	)

	if o.cfg.TLS.Enabled {
		d := tls.Dialer{NetDialer: &net.Dialer{}, Config: o.tlsConfig()}
		cnn, err = d.DialContext(ctx, o.cfg.Network.String(), o.cfg.Address)
	} else {
		d := o.dialer()
		cnn, err = d.DialContext(ctx, o.cfg.Network.String(), o.cfg.Address)
	}

	if err != nil {
		o.notify(err)
		return err
	}

	o.cnn = cnn
	return nil
}

func (o *client) Read(p []byte) (n int, err error) {
	o.mu.Lock()
	cnn := o.cnn
	o.mu.Unlock()

	if cnn == nil {
		err = net.ErrClosed
		o.notify(err)
		return 0, err
	}

	return cnn.Read(p)
}

func (o *client) Write(p []byte) (n int, err error) {
	o.mu.Lock()
	cnn := o.cnn
	o.mu.Unlock()

	if cnn == nil {
		err = net.ErrClosed
		o.notify(err)
		return 0, err
	}

	n, err = cnn.Write(p)
	if err != nil {
		o.notify(err)
	}

	return n, err
}

func (o *client) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cnn == nil {
		return nil
	}

	err := o.cnn.Close()
	o.cnn = nil
	return err
}

func (o *client) RegisterFuncError(fct func(errs ...error)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.fct = fct
}

func (o *client) notify(errs ...error) {
	o.mu.Lock()
	fct := o.fct
	o.mu.Unlock()

	if fct != nil {
		fct(errs...)
	}
}
