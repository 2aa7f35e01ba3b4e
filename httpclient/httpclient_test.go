package httpclient_test

import (
	"context"
	"io"
	"net"
	"time"

	. "github.com/nabbar/gsk/httpclient"

	"github.com/nabbar/gsk/eventloop"
	"github.com/nabbar/gsk/httpheader"
	gskstream "github.com/nabbar/gsk/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func readAll(t chan string, c net.Conn, n int) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := c.Read(buf[got:])
		if err != nil {
			break
		}
		got += m
	}
	t <- string(buf[:got])
}

var _ = Describe("Client", func() {
	var (
		loop       eventloop.Loop
		cancelLoop context.CancelFunc
	)

	BeforeEach(func() {
		loop = eventloop.New()
		var ctx context.Context
		ctx, cancelLoop = context.WithCancel(context.Background())
		go func() { _ = loop.Run(ctx) }()
	})

	AfterEach(func() {
		cancelLoop()
	})

	It("sends a request and matches the response carrying a Content-Length body", func() {
		peer, transport := net.Pipe()
		defer peer.Close()
		defer transport.Close()

		conn := gskstream.New(loop, transport)
		cl := New(loop, conn, Config{})

		reqLine := make(chan string, 1)
		go readAll(reqLine, peer, len("GET /x HTTP/1.1\r\n\r\n"))

		req := httpheader.NewRequest(httpheader.GET, "/x", httpheader.Version{Major: 1, Minor: 1})

		type result struct {
			resp *httpheader.Response
			body string
			err  error
		}
		done := make(chan result, 1)

		err := cl.Do(req, nil, func(resp *httpheader.Response, body gskstream.Stream, err error) {
			var b string
			if body != nil {
				p, _ := io.ReadAll(streamReader{body})
				b = string(p)
			}
			done <- result{resp, b, err}
		})
		Expect(err).ToNot(HaveOccurred())

		Eventually(reqLine, time.Second).Should(Receive(Equal("GET /x HTTP/1.1\r\n\r\n")))

		go func() {
			_, _ = peer.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"))
		}()

		var r result
		Eventually(done, time.Second).Should(Receive(&r))
		Expect(r.err).ToNot(HaveOccurred())
		Expect(r.resp.StatusCode).To(Equal(200))
		Expect(r.body).To(Equal("hello"))
	})

	It("pipelines two requests and matches responses FIFO", func() {
		peer, transport := net.Pipe()
		defer peer.Close()
		defer transport.Close()

		conn := gskstream.New(loop, transport)
		cl := New(loop, conn, Config{})

		raw := make(chan string, 1)
		go readAll(raw, peer, len("GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n"))

		reqA := httpheader.NewRequest(httpheader.GET, "/a", httpheader.Version{Major: 1, Minor: 1})
		reqB := httpheader.NewRequest(httpheader.GET, "/b", httpheader.Version{Major: 1, Minor: 1})

		order := make(chan string, 2)
		_ = cl.Do(reqA, nil, func(resp *httpheader.Response, body gskstream.Stream, err error) {
			order <- "a"
		})
		_ = cl.Do(reqB, nil, func(resp *httpheader.Response, body gskstream.Stream, err error) {
			order <- "b"
		})

		Eventually(raw, time.Second).Should(Receive(Equal("GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n")))

		go func() {
			_, _ = peer.Write([]byte("HTTP/1.1 204 No Content\r\n\r\n"))
			_, _ = peer.Write([]byte("HTTP/1.1 204 No Content\r\n\r\n"))
		}()

		var first, second string
		Eventually(order, time.Second).Should(Receive(&first))
		Eventually(order, time.Second).Should(Receive(&second))
		Expect(first).To(Equal("a"))
		Expect(second).To(Equal("b"))
	})

	It("rejects new requests once MaxPipelineDepth outstanding requests are queued", func() {
		peer, transport := net.Pipe()
		defer peer.Close()
		defer transport.Close()

		conn := gskstream.New(loop, transport)
		cl := New(loop, conn, Config{MaxPipelineDepth: 1})

		go func() {
			buf := make([]byte, 4096)
			_, _ = peer.Read(buf)
		}()

		req := httpheader.NewRequest(httpheader.GET, "/only", httpheader.Version{Major: 1, Minor: 1})
		err := cl.Do(req, nil, func(*httpheader.Response, gskstream.Stream, error) {})
		Expect(err).ToNot(HaveOccurred())

		Eventually(func() error {
			return cl.Do(req, nil, func(*httpheader.Response, gskstream.Stream, error) {})
		}, time.Second).Should(Equal(ErrQueueFull))
	})

	It("drains outstanding requests with an error when the connection closes", func() {
		peer, transport := net.Pipe()
		defer transport.Close()

		conn := gskstream.New(loop, transport)
		cl := New(loop, conn, Config{})

		go func() {
			buf := make([]byte, 4096)
			_, _ = peer.Read(buf)
		}()

		req := httpheader.NewRequest(httpheader.GET, "/gone", httpheader.Version{Major: 1, Minor: 1})
		errCh := make(chan error, 1)
		_ = cl.Do(req, nil, func(resp *httpheader.Response, body gskstream.Stream, err error) {
			errCh <- err
		})

		peer.Close()

		Eventually(errCh, time.Second).Should(Receive(Equal(ErrConnectionClosed)))
	})
})

// streamReader adapts a gskstream.Stream's RawRead into an io.Reader for
// test convenience.
type streamReader struct{ s gskstream.Stream }

func (r streamReader) Read(p []byte) (int, error) {
	n, err := r.s.RawRead(p)
	if err == gskstream.ErrWouldBlock {
		return 0, nil
	}
	return n, err
}
