// Package xmlrpc encodes and decodes XML-RPC method calls, responses
// and faults. Parsing walks a stdlib xml.Decoder token stream with one
// recursive-descent frame per nested struct/array/value — the call stack
// standing in for the value-stack and per-frame "which sub-tag is
// awaited" state a hand-written push parser would otherwise track
// explicitly. Printing emits canonical, fully escaped XML.
package xmlrpc
