// Package lsmtable implements the two-reader k-way merge at the heart of
// an LSM-style table's compaction: it fuses two sorted entry streams into
// one sorted output in bounded-work slices, so a caller driven by an
// event loop can reclaim control between calls instead of blocking until
// the whole merge completes.
package lsmtable
