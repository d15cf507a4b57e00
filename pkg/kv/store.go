// Package kv defines the primitive byte key-value interface that every
// other layer in this SDK builds on: state.Transactional wraps it to
// produce logs, trie.NodeStore implementations persist nibble-keyed nodes
// through it, and the sequencer holds it as the shared reader/writer
// resource described in spec.md §5.
package kv

import (
	"bytes"
	"errors"
)

// ErrNotFound is returned by implementations that distinguish "absent" from
// "empty value" through an error rather than a nil slice. Store.Get never
// returns it: a missing key is reported as (nil, nil). No Store in this
// package returns it either; Pebble maps its backend's not-found error to
// (nil, nil) as well.
var ErrNotFound = errors.New("kv: key not found")

// Store is the primitive byte key-value interface of spec.md §4.1: exact
// get/set/delete plus ascending range iteration. Insertion order is
// irrelevant; range iteration is always in lexicographic key order.
//
// Callers must not mutate the store while an Iterator returned by Iter is
// still open — implementations are free to assume it never happens.
type Store interface {
	// Get performs an exact-match lookup. A nil slice with a nil error
	// means the key is absent; a non-nil error means the backend failed.
	Get(key []byte) ([]byte, error)

	// Set upserts key to value.
	Set(key, value []byte) error

	// Del removes key. It is a no-op, not an error, if key is absent.
	Del(key []byte) error

	// Iter returns an ascending iterator over the given range. The caller
	// must call Release when done; state.Transactional's iterator drains
	// the rest of its range itself on Release so its IterLog is complete.
	Iter(r Range) Iterator

	// Close releases any resources held by the backend.
	Close() error
}

// Iterator walks a Range in ascending key order.
type Iterator interface {
	// Next advances the iterator and reports whether an entry is available.
	Next() bool
	// Key returns the current entry's key. Valid only after Next returns true.
	Key() []byte
	// Value returns the current entry's value. Valid only after Next returns true.
	Value() []byte
	// Err returns the first error encountered during iteration, if any.
	Err() error
	// Release frees resources held by the iterator.
	Release()
}

// BoundKind distinguishes the three ways a Range endpoint can be specified,
// mirroring Rust's std::ops::Bound so the range is expressible without
// generics (spec.md §9's "object-safe range bounds").
type BoundKind uint8

const (
	// Unbounded means the range has no limit on this side.
	Unbounded BoundKind = iota
	// Included means the endpoint key itself is part of the range.
	Included
	// Excluded means the range stops strictly before the endpoint key.
	Excluded
)

// Bound is one endpoint of a Range.
type Bound struct {
	Kind BoundKind
	Key  []byte
}

// Range is the two-bound owned struct used everywhere a Store.Iter range is
// needed. Unlike a Go generic range type, it is a concrete struct over
// []byte so it remains usable through a dyn-dispatched Store interface.
type Range struct {
	Start Bound
	End   Bound
}

// Full returns a Range covering every key.
func Full() Range {
	return Range{Start: Bound{Kind: Unbounded}, End: Bound{Kind: Unbounded}}
}

// Prefix returns the Range of all keys beginning with prefix.
func Prefix(prefix []byte) Range {
	start := Bound{Kind: Included, Key: append([]byte(nil), prefix...)}
	if upper, ok := prefixUpperBound(prefix); ok {
		return Range{Start: start, End: Bound{Kind: Excluded, Key: upper}}
	}
	return Range{Start: start, End: Bound{Kind: Unbounded}}
}

// prefixUpperBound returns the lexicographically smallest key that is
// strictly greater than every key with the given prefix, by incrementing
// the last byte that isn't already 0xff and truncating the rest. It
// reports false if prefix is all 0xff bytes (or empty), in which case there
// is no finite upper bound.
func prefixUpperBound(prefix []byte) ([]byte, bool) {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			upper := append([]byte(nil), prefix[:i+1]...)
			upper[i]++
			return upper, true
		}
	}
	return nil, false
}

// Contains reports whether key falls within r.
func (r Range) Contains(key []byte) bool {
	switch r.Start.Kind {
	case Included:
		if bytes.Compare(key, r.Start.Key) < 0 {
			return false
		}
	case Excluded:
		if bytes.Compare(key, r.Start.Key) <= 0 {
			return false
		}
	}
	switch r.End.Kind {
	case Included:
		if bytes.Compare(key, r.End.Key) > 0 {
			return false
		}
	case Excluded:
		if bytes.Compare(key, r.End.Key) >= 0 {
			return false
		}
	}
	return true
}
