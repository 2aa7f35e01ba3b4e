package contentrouter_test

import (
	"errors"
	"io"

	"github.com/nabbar/gsk/buffer"
	. "github.com/nabbar/gsk/contentrouter"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/memstream"
	"github.com/nabbar/gsk/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler chaining", func() {
	It("falls through on Chain to the next handler in the same slot", func() {
		r := New()
		calls := []string{}

		r.AddHandler(ContentId{Path: "/x"}, func(req *httpheader.Request, _ stream.Stream) (Result, *httpheader.Response, stream.Stream, error) {
			calls = append(calls, "first")
			return Chain, nil, nil, nil
		}, Append)
		r.AddHandler(ContentId{Path: "/x"}, func(req *httpheader.Request, _ stream.Stream) (Result, *httpheader.Response, stream.Stream, error) {
			calls = append(calls, "second")
			resp := httpheader.NewResponse(req.Version, 200, "OK")
			return OK, resp, nil, nil
		}, Append)

		req := newReq("example.com", "", "/x")
		resp, _ := r.Dispatch(req, nil)

		Expect(calls).To(Equal([]string{"first", "second"}))
		Expect(resp.StatusCode).To(Equal(200))
	})

	It("Replace swaps the handler registered for an identical ContentId", func() {
		r := New()
		id := ContentId{Path: "/x"}

		r.AddHandler(id, tierHandler("old"), Append)
		r.AddHandler(id, tierHandler("new"), Replace)

		req := newReq("example.com", "", "/x")
		Expect(dispatchLabel(r, req)).To(Equal("new"))
	})

	It("Prepend runs ahead of previously registered handlers", func() {
		r := New()
		order := []string{}

		r.AddHandler(ContentId{Path: "/x"}, func(req *httpheader.Request, _ stream.Stream) (Result, *httpheader.Response, stream.Stream, error) {
			order = append(order, "later")
			resp := httpheader.NewResponse(req.Version, 200, "OK")
			return OK, resp, nil, nil
		}, Append)
		r.AddHandler(ContentId{Path: "/x"}, func(req *httpheader.Request, _ stream.Stream) (Result, *httpheader.Response, stream.Stream, error) {
			order = append(order, "earlier")
			return Chain, nil, nil, nil
		}, Prepend)

		req := newReq("example.com", "", "/x")
		r.Dispatch(req, nil)

		Expect(order).To(Equal([]string{"earlier", "later"}))
	})

	It("produces a 500 via the custom error handler on Error", func() {
		r := New()
		boom := errors.New("boom")

		r.AddHandler(ContentId{Path: "/x"}, func(req *httpheader.Request, _ stream.Stream) (Result, *httpheader.Response, stream.Stream, error) {
			return Error, nil, nil, boom
		}, Append)

		r.SetErrorHandler(func(req *httpheader.Request, status int, cause error) (*httpheader.Response, stream.Stream) {
			resp := httpheader.NewResponse(req.Version, status, "Custom Error")
			content := memstream.NewBufferSource(buffer.NewFromBytes([]byte(cause.Error())))
			return resp, content
		})

		req := newReq("example.com", "", "/x")
		resp, content := r.Dispatch(req, nil)

		Expect(resp.StatusCode).To(Equal(500))
		data, _ := io.ReadAll(streamReaderAdapter{content})
		Expect(string(data)).To(Equal("boom"))
	})

	It("falls back to the built-in 404 page when nothing matches", func() {
		r := New()
		req := newReq("example.com", "", "/nothing")
		resp, content := r.Dispatch(req, nil)

		Expect(resp.StatusCode).To(Equal(404))
		data, _ := io.ReadAll(streamReaderAdapter{content})
		Expect(string(data)).To(ContainSubstring("Not Found"))
	})
})

var _ = Describe("MIME resolution", func() {
	It("resolves by suffix rule before falling back to the default", func() {
		r := New()
		r.SetMimeType("", ".css", "text/css")
		r.SetDefaultMimeType("application/octet-stream")

		Expect(r.MimeType("style.css")).To(Equal("text/css"))
		Expect(r.MimeType("blob.bin")).To(Equal("application/octet-stream"))
	})

	It("resolves by prefix rule", func() {
		r := New()
		r.SetMimeType("/api/", "", "application/json")

		Expect(r.MimeType("/api/users")).To(Equal("application/json"))
		Expect(r.MimeType("/other/users")).To(Equal("application/octet-stream"))
	})
})

var _ = Describe("CGI handlers", func() {
	It("rejects a non-multipart body with ErrNotMultipart surfaced as a 500", func() {
		r := New()
		r.AddCGIHandler(ContentId{Path: "/form"}, func(req *httpheader.Request, vars []CGIVar) (*httpheader.Response, stream.Stream, error) {
			resp := httpheader.NewResponse(req.Version, 200, "OK")
			return resp, nil, nil
		}, Append)

		req := newReq("example.com", "", "/form")
		req.ContentType = nil
		resp, _ := r.Dispatch(req, nil)

		Expect(resp.StatusCode).To(Equal(500))
	})
})
