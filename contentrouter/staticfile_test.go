package contentrouter_test

import (
	"io"

	. "github.com/nabbar/gsk/contentrouter"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AddFile", func() {
	var r *Router

	BeforeEach(func() {
		r = New()
		r.SetMimeType("", ".html", "text/html")
		r.SetMimeType("", ".txt", "text/plain")
	})

	It("serves a single exact file", func() {
		Expect(r.AddFile("/index.html", "testdata/index.html", FileExact)).To(Succeed())

		req := newReq("example.com", "", "/index.html")
		resp, content := r.Dispatch(req, nil)

		Expect(resp.StatusCode).To(Equal(200))
		Expect(resp.ContentType.MediaType.String()).To(Equal("text/html"))

		data, err := io.ReadAll(streamReaderAdapter{content})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("index page"))
	})

	It("serves a recursive directory tree by path remainder", func() {
		Expect(r.AddFile("/static", "testdata", FileDirTree)).To(Succeed())

		req := newReq("example.com", "", "/static/subdir/nested.txt")
		resp, content := r.Dispatch(req, nil)

		Expect(resp.StatusCode).To(Equal(200))
		data, err := io.ReadAll(streamReaderAdapter{content})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("nested test file"))
	})

	It("reports 404 for a file that does not exist under a served tree", func() {
		Expect(r.AddFile("/static", "testdata", FileDirTree)).To(Succeed())

		req := newReq("example.com", "", "/static/nowhere.txt")
		resp, _ := r.Dispatch(req, nil)

		Expect(resp.StatusCode).To(Equal(404))
	})

	It("rejects path traversal against a served tree", func() {
		Expect(r.AddFile("/static", "testdata", FileDirTree)).To(Succeed())

		req := newReq("example.com", "", "/static/../../../etc/passwd")
		resp, _ := r.Dispatch(req, nil)

		Expect(resp.StatusCode).To(Equal(500))
	})

	It("errors on AddFile for a missing path", func() {
		err := r.AddFile("/nope", "testdata/does-not-exist", FileExact)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Path security", func() {
	It("blocks traversal and dotfiles by default", func() {
		r := New()
		Expect(r.IsPathSafe("../etc/passwd")).To(BeFalse())
		Expect(r.IsPathSafe(".git/config")).To(BeFalse())
		Expect(r.IsPathSafe("a/b/c.txt")).To(BeTrue())
	})

	It("allows everything when disabled", func() {
		r := New()
		r.SetPathSecurity(PathSecurityConfig{Enabled: false})
		Expect(r.IsPathSafe("../../etc/passwd")).To(BeTrue())
	})

	It("enforces MaxPathDepth", func() {
		r := New()
		cfg := DefaultPathSecurityConfig()
		cfg.MaxPathDepth = 2
		r.SetPathSecurity(cfg)
		Expect(r.IsPathSafe("a/b.txt")).To(BeTrue())
		Expect(r.IsPathSafe("a/b/c.txt")).To(BeFalse())
	})
})

// streamReaderAdapter is a local copy of the same RawRead-to-io.Reader
// shim used across this module's test suites.
type streamReaderAdapter struct {
	s interface {
		RawRead([]byte) (int, error)
	}
}

func (a streamReaderAdapter) Read(p []byte) (int, error) {
	return a.s.RawRead(p)
}
