package httpbackend

import (
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	"github.com/nabbar/gsk/httpclient"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/stream"
	"github.com/nabbar/gsk/urlmodel"
	"github.com/nabbar/gsk/urltransfer"
)

// Register wires the "http" and "https" schemes into urltransfer's
// backend registry. Call it once during program startup before any
// urltransfer.New against an http(s) URL.
func Register(opts Options) {
	urltransfer.RegisterBackend("http", newFactory(opts, false))
	urltransfer.RegisterBackend("https", newFactory(opts, true))
}

func newFactory(opts Options, useTLS bool) urltransfer.BackendFactory {
	return func(u *urlmodel.URL, cfg *urltransfer.Config) (urltransfer.Backend, error) {
		return &backend{url: u, cfg: cfg, opts: opts, useTLS: useTLS}, nil
	}
}

type backend struct {
	mu     sync.Mutex
	url    *urlmodel.URL
	cfg    *urltransfer.Config
	opts   Options
	useTLS bool

	conn      net.Conn
	cancelled bool
}

func (b *backend) Start(t *urltransfer.Transfer) error {
	addr := t.AddressHint()
	if addr == "" {
		a, err := b.url.Address()
		if err != nil {
			t.Complete(urltransfer.BadRequest, nil, err)
			return err
		}
		addr = a
	}

	dialer := net.Dialer{Timeout: b.opts.DialTimeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		t.Complete(urltransfer.NoServer, nil, err)
		return err
	}

	b.mu.Lock()
	if b.cancelled {
		b.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	b.conn = conn
	b.mu.Unlock()

	var rwc net.Conn = conn
	if b.useTLS {
		host, _, splitErr := net.SplitHostPort(addr)
		if splitErr != nil {
			host = b.url.Host
		}
		tlsCfg := b.opts.tlsConfig().TLS(host)
		tlsConn := tls.Client(conn, tlsCfg)
		if hsErr := tlsConn.Handshake(); hsErr != nil {
			_ = conn.Close()
			t.Complete(urltransfer.ServerError, nil, hsErr)
			return hsErr
		}
		rwc = tlsConn
	}

	strm := stream.New(b.cfg.Loop, rwc, stream.WithNeverPartialWrites())
	client := httpclient.New(b.cfg.Loop, strm, httpclient.Config{})

	req, uploadBody, reqErr := b.buildRequest(t)
	if reqErr != nil {
		t.Complete(urltransfer.BadRequest, nil, reqErr)
		return reqErr
	}

	return client.Do(req, uploadBody, func(resp *httpheader.Response, body stream.Stream, err error) {
		b.handleResponse(t, resp, body, err)
	})
}

func (b *backend) buildRequest(t *urltransfer.Transfer) (*httpheader.Request, stream.Stream, error) {
	verb := httpheader.GET
	var uploadBody stream.Stream
	var knownSize bool
	var size int64

	if factory := t.Upload(); factory != nil {
		body, sz, known, err := factory()
		if err != nil {
			return nil, nil, err
		}
		verb = httpheader.POST
		uploadBody = body
		size = sz
		knownSize = known
	}

	uri := b.url.Path
	if uri == "" {
		uri = "/"
	}
	if b.url.Query != "" {
		uri += "?" + b.url.Query
	}

	req := httpheader.NewRequest(verb, uri, httpheader.Version{Major: 1, Minor: 1})
	req.Host = b.url.Host
	if knownSize {
		req.ContentLength = size
	}

	for _, modify := range t.Modifiers() {
		modify(req)
	}

	return req, uploadBody, nil
}

func (b *backend) handleResponse(t *urltransfer.Transfer, resp *httpheader.Response, body stream.Stream, err error) {
	if err != nil {
		t.Complete(urltransfer.ServerError, nil, err)
		return
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		t.Complete(urltransfer.Success, body, nil)

	case resp.StatusCode == 301 || resp.StatusCode == 302 ||
		resp.StatusCode == 303 || resp.StatusCode == 307:
		location, ok := resp.Misc.Get("Location")
		if !ok || location == "" {
			t.Complete(urltransfer.Unsupported, nil, fmt.Errorf("httpbackend: redirect status %d with no Location", resp.StatusCode))
			return
		}
		t.Redirect(location)

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		t.Complete(urltransfer.NotFound, nil, fmt.Errorf("httpbackend: status %d", resp.StatusCode))

	case resp.StatusCode >= 500 && resp.StatusCode < 600:
		t.Complete(urltransfer.ServerError, nil, fmt.Errorf("httpbackend: status %d", resp.StatusCode))

	default:
		t.Complete(urltransfer.Unsupported, nil, fmt.Errorf("httpbackend: unhandled status %d", resp.StatusCode))
	}
}

func (b *backend) Cancel() {
	b.mu.Lock()
	b.cancelled = true
	conn := b.conn
	b.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}
