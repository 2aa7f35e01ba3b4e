package urlmodel

import (
	"fmt"
	"strings"
	"sync"
)

// URL is a parsed reference: scheme:[//[user@]host[:port]][/path][?query][#fragment].
type URL struct {
	Scheme   string
	User     string
	Host     string
	Port     string
	Path     string
	Query    string
	Fragment string

	// opaque is true for scheme:opaque forms that never had a //authority,
	// e.g. "mailto:foo@bar". Path then holds the opaque part verbatim.
	opaque bool
}

// Scheme describes a registered URL scheme.
type Scheme struct {
	Name        string
	DefaultPort string
	// HasAuthority is false for schemes such as "file" whose paths are
	// local and never carry a host component even though the syntax
	// still allows an empty authority ("file:///etc/hosts").
	HasAuthority bool
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Scheme{
		"http":  {Name: "http", DefaultPort: "80", HasAuthority: true},
		"https": {Name: "https", DefaultPort: "443", HasAuthority: true},
		"ftp":   {Name: "ftp", DefaultPort: "21", HasAuthority: true},
		"file":  {Name: "file", DefaultPort: "", HasAuthority: true},
	}
)

// RegisterScheme adds or replaces a scheme definition. Transfer backends
// call this during init so that Parse and Resolve know how to treat their
// scheme's authority and default port.
func RegisterScheme(s Scheme) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(s.Name)] = s
}

// LookupScheme returns the registered definition for name, if any.
func LookupScheme(name string) (Scheme, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[strings.ToLower(name)]
	return s, ok
}

// String renders the URL back to its canonical wire form.
func (u *URL) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteByte(':')
	if u.opaque {
		b.WriteString(u.Path)
	} else {
		if u.Host != "" || u.hasAuthoritySyntax() {
			b.WriteString("//")
			if u.User != "" {
				b.WriteString(u.User)
				b.WriteByte('@')
			}
			b.WriteString(u.Host)
			if u.Port != "" {
				b.WriteByte(':')
				b.WriteString(u.Port)
			}
		}
		b.WriteString(u.Path)
	}
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

func (u *URL) hasAuthoritySyntax() bool {
	s, ok := LookupScheme(u.Scheme)
	return ok && s.HasAuthority
}

// Address returns host:port, applying the scheme's default port when the
// URL omitted one. Returns an error if the scheme has no authority.
func (u *URL) Address() (string, error) {
	s, ok := LookupScheme(u.Scheme)
	if !ok || !s.HasAuthority {
		return "", fmt.Errorf("urlmodel: scheme %q has no network authority", u.Scheme)
	}
	port := u.Port
	if port == "" {
		port = s.DefaultPort
	}
	if port == "" {
		return "", fmt.Errorf("urlmodel: no port available for scheme %q", u.Scheme)
	}
	return u.Host + ":" + port, nil
}

// Clone returns a deep copy, safe to mutate independently of the receiver.
func (u *URL) Clone() *URL {
	c := *u
	return &c
}
