package lsmtable

import "bytes"

// Reader yields sorted (key, value) pairs from one input to the merge.
type Reader interface {
	// EOF reports whether the reader is exhausted. Key/Value are only
	// valid when EOF is false.
	EOF() bool
	Key() []byte
	Value() []byte
	// Advance moves to the next entry. Once it returns an error the
	// reader must be treated as failed, not merely EOF.
	Advance() error
}

// Writer accepts merged entries in key order. FeedEntry mirrors
// gsk_table_file_feed_entry: it returns wantMore=true when the entry was
// buffered but the writer is not yet ready to accept another (the caller
// must retry the same entry), and wantMore=false once the entry has been
// durably accepted and the caller may advance its reader(s).
type Writer interface {
	FeedEntry(key, value []byte) (wantMore bool, err error)
}

// CompareFunc orders two keys the way bytes.Compare does. A nil
// CompareFunc on Merger selects bytes.Compare itself (the "memcmp" axis
// from the merge engine's three specialization axes).
type CompareFunc func(a, b []byte) int

// MergeResult is returned by a MergeFunc to choose which value (or none)
// survives when both readers present an equal key.
type MergeResult int

const (
	// MergeUseA keeps reader A's value.
	MergeUseA MergeResult = iota
	// MergeUseB keeps reader B's value.
	MergeUseB
	// MergeSuccess uses the value written into the merge function's
	// returned slice.
	MergeSuccess
	// MergeDrop discards both values; no entry is written for this key.
	MergeDrop
)

// MergeFunc combines two entries sharing the same key. A nil MergeFunc on
// Merger means "no merge": equal keys are not combined and both entries
// are emitted as separate outputs (A first, then B).
type MergeFunc func(key, valueA, valueB []byte) (MergeResult, []byte)

// SimplifyResult is returned by a SimplifyFunc to choose the value
// ultimately fed to the output, or to drop the entry entirely.
type SimplifyResult int

const (
	// SimplifyIdentity keeps the value unchanged.
	SimplifyIdentity SimplifyResult = iota
	// SimplifySuccess uses the value written into the simplify
	// function's returned slice.
	SimplifySuccess
	// SimplifyDelete drops the entry; the reader(s) still advance.
	SimplifyDelete
)

// SimplifyFunc post-processes a candidate output entry, e.g. to collapse
// a tombstone. A nil SimplifyFunc on Merger means "no simplify": every
// candidate entry is fed to the output unchanged.
type SimplifyFunc func(key, value []byte) (SimplifyResult, []byte)

// Mode selects how Run treats the iteration budget.
type Mode int

const (
	// Continuation returns once at least Run's iterations argument worth
	// of entries have been emitted, so the caller can give time back to
	// its event loop and call Run again later to resume.
	Continuation Mode = iota
	// Flush ignores the iteration budget and runs until both readers are
	// exhausted, for a final compaction that must not be left partial.
	Flush
)

func defaultCompare(a, b []byte) int { return bytes.Compare(a, b) }
