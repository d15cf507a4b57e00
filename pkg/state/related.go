package state

import (
	"errors"
	"sort"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
)

// ErrUnrelatedKey is returned by Related.Get when a key is read that was
// not part of the set the RelatedState view was seeded with. The Tx
// circuit's constrained re-execution uses this to catch a transaction that
// touches state outside what its witness proved it was allowed to see.
var ErrUnrelatedKey = errors.New("state: key not in related set")

// Related is a closed, in-memory key-value view seeded with exactly the
// keys a transaction's witness claims it accessed. It implements the same
// get/set/del/iter surface as kv.Store so the execution runtime can run
// unmodified against either a full committed store or this constrained
// replay view; the only behavioral difference is that a miss here is an
// error rather than "absent".
type Related struct {
	entries map[string][]byte
}

// NewRelated seeds a Related view from a snapshot of key/value pairs. A nil
// value for a key means "present but empty", never "absent" — absent keys
// must simply not be in the map.
func NewRelated(entries map[string][]byte) *Related {
	r := &Related{entries: make(map[string][]byte, len(entries))}
	for k, v := range entries {
		r.entries[k] = v
	}
	return r
}

func (r *Related) Get(key []byte) ([]byte, error) {
	v, ok := r.entries[string(key)]
	if !ok {
		return nil, ErrUnrelatedKey
	}
	return v, nil
}

func (r *Related) Set(key, value []byte) error {
	r.entries[string(key)] = append([]byte(nil), value...)
	return nil
}

func (r *Related) Del(key []byte) error {
	delete(r.entries, string(key))
	return nil
}

func (r *Related) Close() error { return nil }

func (r *Related) Iter(rng kv.Range) kv.Iterator {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		if rng.Contains([]byte(k)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return &relatedIterator{r: r, keys: keys, pos: -1}
}

type relatedIterator struct {
	r    *Related
	keys []string
	pos  int
}

func (it *relatedIterator) Next() bool {
	it.pos++
	return it.pos < len(it.keys)
}

func (it *relatedIterator) Key() []byte   { return []byte(it.keys[it.pos]) }
func (it *relatedIterator) Value() []byte { return it.r.entries[it.keys[it.pos]] }
func (it *relatedIterator) Err() error     { return nil }
func (it *relatedIterator) Release()       {}
