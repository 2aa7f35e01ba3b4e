// Package urlmodel parses and resolves URLs using a pluggable scheme
// registry: scheme-prefix, optional //authority, optional /path, ?query,
// #fragment, with relative resolution per RFC 3986 section 5.
package urlmodel
