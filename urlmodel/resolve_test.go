package urlmodel_test

import (
	. "github.com/nabbar/gsk/urlmodel"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// These cases mirror RFC 3986 section 5.4's reference resolution examples
// for the base "http://a/b/c/d;p?q".
var _ = Describe("Resolve", func() {
	base, _ := Parse("http://a/b/c/d;p?q")

	DescribeTable("normal examples",
		func(ref, want string) {
			r, err := base.Resolve(ref)
			Expect(err).ToNot(HaveOccurred())
			Expect(r.String()).To(Equal(want))
		},
		Entry("g:h", "g:h", "g:h"),
		Entry("g", "g", "http://a/b/c/g"),
		Entry("./g", "./g", "http://a/b/c/g"),
		Entry("g/", "g/", "http://a/b/c/g/"),
		Entry("/g", "/g", "http://a/g"),
		Entry("//g", "//g", "http://g"),
		Entry("?y", "?y", "http://a/b/c/d;p?y"),
		Entry("g?y", "g?y", "http://a/b/c/g?y"),
		Entry("#s", "#s", "http://a/b/c/d;p?q#s"),
		Entry("g#s", "g#s", "http://a/b/c/g#s"),
		Entry(".", ".", "http://a/b/c/"),
		Entry("./", "./", "http://a/b/c/"),
		Entry("..", "..", "http://a/b/"),
		Entry("../", "../", "http://a/b/"),
		Entry("../g", "../g", "http://a/b/g"),
		Entry("../..", "../..", "http://a/"),
		Entry("../../g", "../../g", "http://a/g"),
	)

	It("detects redirect loops by comparing resolved targets up to fragment", func() {
		original, _ := Parse("http://a/b/c")
		r1, _ := original.Resolve("/b/c#frag")
		same := r1.Scheme == original.Scheme && r1.Host == original.Host &&
			r1.Port == original.Port && r1.Path == original.Path && r1.Query == original.Query
		Expect(same).To(BeTrue())
	})
})
