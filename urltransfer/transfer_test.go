package urltransfer_test

import (
	. "github.com/nabbar/gsk/urltransfer"

	"github.com/nabbar/gsk/memstream"
	"github.com/nabbar/gsk/stream"
	"github.com/nabbar/gsk/urlmodel"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func mustParse(raw string) *urlmodel.URL {
	u, err := urlmodel.Parse(raw)
	Expect(err).ToNot(HaveOccurred())
	return u
}

var _ = Describe("Transfer", func() {
	It("reports Success with the backend's content stream", func() {
		var gotResult Result
		var gotContent stream.Stream

		backend := useFakeBackend(func(t *Transfer) {
			t.Complete(Success, memstream.NewBufferSink(nil), nil)
		})

		tr := New(mustParse("faketest://host/a"), Config{
			Done: func(r Result, c stream.Stream, err error) {
				gotResult, gotContent = r, c
			},
		})
		Expect(tr.Start()).To(Succeed())

		Expect(gotResult).To(Equal(Success))
		Expect(gotContent).ToNot(BeNil())
		_ = backend
	})

	It("follows a redirect to a second backend and completes there", func() {
		var gotResult Result
		var legs []string

		second := &fakeBackend{onStart: func(t *Transfer) {
			legs = append(legs, t.URL().Path)
			t.Complete(Success, nil, nil)
		}}

		useFakeBackend(func(t *Transfer) {
			legs = append(legs, t.URL().Path)
			fakeBackendMu.Lock()
			nextFakeBackend = second
			fakeBackendMu.Unlock()
			t.Redirect("/b")
		})

		tr := New(mustParse("faketest://host/a"), Config{
			FollowRedirects: true,
			Done: func(r Result, c stream.Stream, err error) {
				gotResult = r
			},
		})
		Expect(tr.Start()).To(Succeed())

		Expect(legs).To(Equal([]string{"/a", "/b"}))
		Expect(gotResult).To(Equal(Success))
	})

	It("reports Redirect without following when FollowRedirects is false", func() {
		var gotResult Result

		useFakeBackend(func(t *Transfer) {
			t.Redirect("/b")
		})

		tr := New(mustParse("faketest://host/a"), Config{
			FollowRedirects: false,
			Done: func(r Result, c stream.Stream, err error) {
				gotResult = r
			},
		})
		Expect(tr.Start()).To(Succeed())
		Expect(gotResult).To(Equal(Redirect))
	})

	It("detects a redirect loop back to the original URL", func() {
		var gotResult Result
		var gotErr error

		useFakeBackend(func(t *Transfer) {
			t.Redirect("/a")
		})

		tr := New(mustParse("faketest://host/a"), Config{
			FollowRedirects: true,
			Done: func(r Result, c stream.Stream, err error) {
				gotResult, gotErr = r, err
			},
		})
		Expect(tr.Start()).To(Succeed())
		Expect(gotResult).To(Equal(RedirectLoop))
		Expect(gotErr).To(HaveOccurred())
	})

	It("cancels the active backend and reports Cancelled", func() {
		var gotResult Result

		backend := useFakeBackend(func(t *Transfer) {
			// backend never completes on its own; test cancels explicitly.
		})

		tr := New(mustParse("faketest://host/a"), Config{
			Done: func(r Result, c stream.Stream, err error) {
				gotResult = r
			},
		})
		Expect(tr.Start()).To(Succeed())
		tr.Cancel()

		Expect(backend.wasCancelled()).To(BeTrue())
		Expect(gotResult).To(Equal(Cancelled))
	})

	It("ignores a second completion after the first", func() {
		calls := 0

		useFakeBackend(func(t *Transfer) {
			t.Complete(Success, nil, nil)
			t.Complete(ServerError, nil, nil)
		})

		tr := New(mustParse("faketest://host/a"), Config{
			Done: func(r Result, c stream.Stream, err error) {
				calls++
			},
		})
		Expect(tr.Start()).To(Succeed())
		Expect(calls).To(Equal(1))
	})
})
