// Package httpbackend registers the "http" and "https" backends with
// urltransfer: it dials the resolved address, wraps it in TLS for https,
// attaches an httpclient.Client, sends a GET or an upload-driven POST, and
// maps the response status line onto a urltransfer.Result.
package httpbackend
