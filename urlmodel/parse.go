package urlmodel

import (
	"fmt"
	"strings"
)

// Parse splits raw into scheme, optional authority, path, query and
// fragment. It does not require the scheme to be registered: an unknown
// scheme parses fine but Address/Resolve against it may later fail.
func Parse(raw string) (*URL, error) {
	rest := raw

	scheme, rest, ok := cutScheme(rest)
	if !ok {
		return nil, fmt.Errorf("urlmodel: %q has no scheme prefix", raw)
	}

	u := &URL{Scheme: strings.ToLower(scheme)}

	if frag := strings.IndexByte(rest, '#'); frag >= 0 {
		u.Fragment = rest[frag+1:]
		rest = rest[:frag]
	}
	if q := strings.IndexByte(rest, '?'); q >= 0 {
		u.Query = rest[q+1:]
		rest = rest[:q]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		authority := rest
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			authority = rest[:slash]
			rest = rest[slash:]
		} else {
			rest = ""
		}
		if err := parseAuthority(u, authority); err != nil {
			return nil, err
		}
		u.Path = rest
	} else {
		u.opaque = true
		u.Path = rest
	}

	return u, nil
}

// cutScheme splits "scheme:rest" on the first colon, requiring the scheme
// to look like RFC 3986's ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func cutScheme(s string) (scheme, rest string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return "", "", false
	}
	name := s[:i]
	for j, r := range name {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if j == 0 && !isAlpha {
			return "", "", false
		}
		if j > 0 && !isAlpha && !isDigit && r != '+' && r != '-' && r != '.' {
			return "", "", false
		}
	}
	return name, s[i+1:], true
}

func parseAuthority(u *URL, authority string) error {
	if authority == "" {
		return nil
	}
	if at := strings.IndexByte(authority, '@'); at >= 0 {
		u.User = authority[:at]
		authority = authority[at+1:]
	}
	if authority != "" && authority[0] == '[' {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return fmt.Errorf("urlmodel: unterminated IPv6 literal in %q", authority)
		}
		u.Host = authority[:end+1]
		rest := authority[end+1:]
		if strings.HasPrefix(rest, ":") {
			u.Port = rest[1:]
		}
		return nil
	}
	if colon := strings.LastIndexByte(authority, ':'); colon >= 0 {
		u.Host = authority[:colon]
		u.Port = authority[colon+1:]
	} else {
		u.Host = authority
	}
	return nil
}
