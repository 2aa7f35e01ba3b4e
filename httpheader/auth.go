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

import (
	"encoding/base64"
	"strings"
)

// Authenticate is a parsed WWW-Authenticate challenge.
type Authenticate struct {
	Scheme    string
	Realm     string
	Domain    string
	Nonce     string
	Opaque    string
	Algorithm string
	Qop       string
}

// Authorization is a parsed Authorization credential. For Basic, User/Pass
// are populated from the decoded "user:pass" payload. For Digest, the
// remaining fields mirror Authenticate plus the client's computed
// response.
type Authorization struct {
	Scheme         string
	User           string
	Pass           string
	Realm          string
	Nonce          string
	Opaque         string
	Algorithm      string
	Qop            string
	ResponseDigest string
	EntityDigest   string
}

func parseAuthParams(rest string) map[string]string {
	out := map[string]string{}
	for _, part := range splitAttrList(rest) {
		k, v, ok := cutEquals(strings.TrimSpace(part))
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = unquote(strings.TrimSpace(v))
	}
	return out
}

// splitAttrList splits a comma-separated attribute list while treating
// commas inside double quotes as literal.
func splitAttrList(s string) []string {
	var out []string
	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func parseWWWAuthenticate(value string) *Authenticate {
	scheme, rest, ok := strings.Cut(value, " ")
	if !ok {
		return &Authenticate{Scheme: value}
	}
	p := parseAuthParams(rest)
	return &Authenticate{
		Scheme:    scheme,
		Realm:     p["realm"],
		Domain:    p["domain"],
		Nonce:     p["nonce"],
		Opaque:    p["opaque"],
		Algorithm: p["algorithm"],
		Qop:       p["qop"],
	}
}

func parseAuthorization(value string) *Authorization {
	scheme, rest, ok := strings.Cut(value, " ")
	if !ok {
		return &Authorization{Scheme: value}
	}

	if strings.EqualFold(scheme, "Basic") {
		a := &Authorization{Scheme: scheme}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(rest))
		if err == nil {
			if u, p, ok := strings.Cut(string(raw), ":"); ok {
				a.User, a.Pass = u, p
			}
		}
		return a
	}

	p := parseAuthParams(rest)
	return &Authorization{
		Scheme:         scheme,
		User:           p["username"],
		Realm:          p["realm"],
		Nonce:          p["nonce"],
		Opaque:         p["opaque"],
		Algorithm:      p["algorithm"],
		Qop:            p["qop"],
		ResponseDigest: p["response"],
		EntityDigest:   p["digest"],
	}
}
