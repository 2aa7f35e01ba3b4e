// Package urltransfer drives a URL fetch through its Constructing, Started
// and Done states: scheme lookup selects a backend, the backend runs its
// protocol, redirects are resolved and loop-checked against the chain, and
// the done callback fires exactly once with a Result and, on success, the
// downloaded stream.
package urltransfer
