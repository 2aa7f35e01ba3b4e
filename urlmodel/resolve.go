package urlmodel

import "strings"

// Resolve applies RFC 3986 section 5's reference resolution algorithm,
// treating u as the base and ref as a (possibly relative) reference.
func (u *URL) Resolve(ref string) (*URL, error) {
	if scheme, rest, ok := cutScheme(ref); ok {
		_ = rest
		parsed, err := Parse(ref)
		if err != nil {
			return nil, err
		}
		parsed.Scheme = strings.ToLower(scheme)
		parsed.Path = removeDotSegments(parsed.Path)
		return parsed, nil
	}

	t := &URL{Scheme: u.Scheme}

	switch {
	case strings.HasPrefix(ref, "//"):
		rest := ref[2:]
		authority := rest
		path := ""
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			authority = rest[:slash]
			path = rest[slash:]
		}
		if err := parseAuthority(t, authority); err != nil {
			return nil, err
		}
		p, q, f := splitPathQueryFragment(path)
		t.Path = removeDotSegments(p)
		t.Query, t.Fragment = q, f
		return t, nil
	}

	t.User, t.Host, t.Port = u.User, u.Host, u.Port

	rPath, rQuery, rFrag := splitPathQueryFragment(ref)

	switch {
	case rPath == "":
		t.Path = u.Path
		if rQuery == "" {
			t.Query = u.Query
		} else {
			t.Query = rQuery
		}
	case strings.HasPrefix(rPath, "/"):
		t.Path = removeDotSegments(rPath)
		t.Query = rQuery
	default:
		t.Path = removeDotSegments(mergePath(u, rPath))
		t.Query = rQuery
	}
	t.Fragment = rFrag
	return t, nil
}

func splitPathQueryFragment(s string) (path, query, fragment string) {
	if h := strings.IndexByte(s, '#'); h >= 0 {
		fragment = s[h+1:]
		s = s[:h]
	}
	if q := strings.IndexByte(s, '?'); q >= 0 {
		query = s[q+1:]
		s = s[:q]
	}
	path = s
	return
}

// mergePath implements RFC 3986 5.3's merge routine: take everything in
// the base path up to and including the last "/", then append ref.
func mergePath(base *URL, ref string) string {
	if base.Host != "" && base.Path == "" {
		return "/" + ref
	}
	if i := strings.LastIndexByte(base.Path, '/'); i >= 0 {
		return base.Path[:i+1] + ref
	}
	return ref
}

// removeDotSegments implements RFC 3986 5.2.4.
func removeDotSegments(path string) string {
	var out []string
	in := path
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = "/" + in[4:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == ".", in == "..":
			in = ""
		default:
			var seg string
			if strings.HasPrefix(in, "/") {
				rest := in[1:]
				end := strings.IndexByte(rest, '/')
				if end < 0 {
					seg, in = in, ""
				} else {
					seg, in = in[:end+1], in[end+1:]
				}
			} else {
				end := strings.IndexByte(in, '/')
				if end < 0 {
					seg, in = in, ""
				} else {
					seg, in = in[:end], in[end:]
				}
			}
			out = append(out, seg)
		}
	}
	return strings.Join(out, "")
}
