package kv

import (
	"github.com/cockroachdb/pebble"
)

// Pebble is a disk-backed Store over a cockroachdb/pebble database. It
// backs the sequencer's committed state in production; trie and sparse
// tree node stores layer a fastcache in front of an equivalent instance
// (see trie.Database).
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) a pebble database at dir.
func OpenPebble(dir string, opts *pebble.Options) (*Pebble, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, err
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Get(key []byte) ([]byte, error) {
	v, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	if cerr := closer.Close(); cerr != nil {
		return nil, cerr
	}
	return out, nil
}

func (p *Pebble) Set(key, value []byte) error {
	return p.db.Set(key, value, pebble.NoSync)
}

func (p *Pebble) Del(key []byte) error {
	return p.db.Delete(key, pebble.NoSync)
}

func (p *Pebble) Close() error {
	return p.db.Close()
}

func (p *Pebble) Iter(r Range) Iterator {
	opts := &pebble.IterOptions{}
	if r.Start.Kind != Unbounded {
		opts.LowerBound = r.Start.Key
	}
	switch r.End.Kind {
	case Excluded:
		opts.UpperBound = r.End.Key
	case Included:
		// pebble's UpperBound is exclusive; the smallest key after End.Key
		// is End.Key followed by a zero byte.
		opts.UpperBound = append(append([]byte(nil), r.End.Key...), 0x00)
	}

	it, err := p.db.NewIter(opts)
	if err != nil {
		return &pebbleIterator{err: err}
	}
	return &pebbleIterator{it: it, started: false, lower: r.Start}
}

// pebbleIterator adapts pebble.Iterator to kv.Iterator, additionally
// enforcing the Excluded lower-bound case that pebble's LowerBound (always
// inclusive) cannot express on its own.
type pebbleIterator struct {
	it      *pebble.Iterator
	started bool
	lower   Bound
	err     error
}

func (it *pebbleIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for {
		var ok bool
		if !it.started {
			ok = it.it.First()
			it.started = true
		} else {
			ok = it.it.Next()
		}
		if !ok {
			return false
		}
		if it.lower.Kind == Excluded && string(it.it.Key()) == string(it.lower.Key) {
			continue
		}
		return true
	}
}

func (it *pebbleIterator) Key() []byte {
	return append([]byte(nil), it.it.Key()...)
}

func (it *pebbleIterator) Value() []byte {
	return append([]byte(nil), it.it.Value()...)
}

func (it *pebbleIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	if it.it == nil {
		return nil
	}
	return it.it.Error()
}

func (it *pebbleIterator) Release() {
	if it.it != nil {
		_ = it.it.Close()
	}
}
