// Package state implements the transactional state-access layer of
// spec.md §4.2–4.3: a logging wrapper over kv.Store that records every
// read, range scan, and write a transaction performs, folds the write
// records into a per-key before/after diff, and exposes the collaborator
// views (RelatedState, Cached) the circuit witness and execution runtime
// need.
package state

import "github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"

// LogKind identifies which kind of access a Log record represents.
type LogKind uint8

const (
	LogRead LogKind = iota
	LogIter
	LogDiff
)

// Log is one entry in a transaction's access log. Exactly one of Read,
// Iter, or Diff is set, matching Kind.
type Log struct {
	Kind LogKind
	Read *ReadLog
	Iter *IterLog
	Diff *DiffLog
}

// ReadLog records a single-key lookup: whether it was present and, if so,
// the value observed. Value is nil when Found is false.
type ReadLog struct {
	Key   []byte
	Found bool
	Value []byte
}

// IterLog records every key observed while a range was scanned. Keys is
// always the complete set of keys under Range at the time of the scan,
// even if the caller stopped consuming the iterator early — see
// Transactional.Iter for how that completeness guarantee is enforced.
type IterLog struct {
	Range kv.Range
	Keys  [][]byte
}

// DiffLog records a single write: the value observed immediately before
// the write (nil if the key was absent) and the value set (nil for a
// delete).
type DiffLog struct {
	Key    []byte
	Before []byte
	After  []byte
}

func readLog(key, value []byte, found bool) Log {
	return Log{Kind: LogRead, Read: &ReadLog{Key: key, Found: found, Value: value}}
}

func iterLog(r kv.Range, keys [][]byte) Log {
	return Log{Kind: LogIter, Iter: &IterLog{Range: r, Keys: keys}}
}

func diffLog(key, before, after []byte) Log {
	return Log{Kind: LogDiff, Diff: &DiffLog{Key: key, Before: before, After: after}}
}
