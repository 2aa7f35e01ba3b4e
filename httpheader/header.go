/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package httpheader

// Header holds the fields common to both requests and responses.
type Header struct {
	Version Version

	ContentLength   int64 // -1 means unset
	ContentType     *ContentType
	TransferEncoding []string

	AcceptCharset  QualityList[string]
	AcceptEncoding QualityList[string]
	AcceptLanguage QualityList[string]
	TE             QualityList[string]
	Accept         QualityList[MediaType]

	Cookies    []Cookie
	SetCookies []Cookie

	CacheControl *CacheDirective
	Range        *RangeSpec

	Connection ConnectionType
	Host       string

	WWWAuthenticate *Authenticate
	Authorization   *Authorization

	// Misc preserves, in arrival order, every recognized-but-unhandled
	// header line (or every line, under strict=false parsing for an
	// unknown key): insertion order matters because a printer round-trip
	// must reproduce the wire order a real client or server saw it in.
	Misc *MiscFields
}

func newHeader() Header {
	return Header{ContentLength: -1}
}

// MiscFields is an insertion-order-preserving string map.
type MiscFields struct {
	keys   []string
	values map[string]string
}

// NewMiscFields returns an empty MiscFields.
func NewMiscFields() *MiscFields {
	return &MiscFields{values: map[string]string{}}
}

// Set records key=value. The first time a given key (case-sensitive) is
// set determines its position in Keys(); later calls with the same key
// update the value in place without moving it.
func (m *MiscFields) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *MiscFields) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns every key in insertion order.
func (m *MiscFields) Keys() []string {
	return m.keys
}
