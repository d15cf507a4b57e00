package state

import (
	"sort"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
)

// Cached is a non-logging read/write overlay over a kv.Store. Unlike
// Transactional it keeps no access log, just the three sets needed to
// later report which keys it touched and to commit its writes: it backs
// collaborators (module keepers, ante handlers) that need write-buffering
// without contributing to the transaction's witness.
type Cached struct {
	base kv.Store

	get map[string]struct{}
	set map[string][]byte
	del map[string]struct{}
}

// NewCached wraps base with an empty overlay.
func NewCached(base kv.Store) *Cached {
	return &Cached{
		base: base,
		get:  make(map[string]struct{}),
		set:  make(map[string][]byte),
		del:  make(map[string]struct{}),
	}
}

func (c *Cached) Get(key []byte) ([]byte, error) {
	k := string(key)
	c.get[k] = struct{}{}
	if v, ok := c.set[k]; ok {
		return v, nil
	}
	if _, ok := c.del[k]; ok {
		return nil, nil
	}
	return c.base.Get(key)
}

func (c *Cached) Set(key, value []byte) error {
	k := string(key)
	c.set[k] = append([]byte(nil), value...)
	delete(c.del, k)
	return nil
}

func (c *Cached) Del(key []byte) error {
	k := string(key)
	c.del[k] = struct{}{}
	delete(c.set, k)
	return nil
}

func (c *Cached) Close() error { return nil }

func (c *Cached) Iter(r kv.Range) kv.Iterator {
	base := c.base.Iter(r)
	overlayKeys := make([]string, 0, len(c.set))
	for k := range c.set {
		if r.Contains([]byte(k)) {
			overlayKeys = append(overlayKeys, k)
		}
	}
	sort.Strings(overlayKeys)
	return &cachedIterator{c: c, base: base, overlayKeys: overlayKeys, oi: 0, started: false}
}

// AccessedKeys returns every key this Cached has had Get called on,
// regardless of whether it was also written.
func (c *Cached) AccessedKeys() [][]byte {
	out := make([][]byte, 0, len(c.get))
	for k := range c.get {
		out = append(out, []byte(k))
	}
	sort.Slice(out, func(i, j int) bool { return string(out[i]) < string(out[j]) })
	return out
}

// Commit applies every buffered Set/Del to the underlying store.
func (c *Cached) Commit() error {
	for k := range c.del {
		if err := c.base.Del([]byte(k)); err != nil {
			return err
		}
	}
	for k, v := range c.set {
		if err := c.base.Set([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

type cachedIterator struct {
	c           *Cached
	base        kv.Iterator
	overlayKeys []string
	oi          int
	started     bool
	cur         [2][]byte
}

func (it *cachedIterator) Next() bool {
	for {
		haveBase := it.base.Next()
		haveOverlay := it.oi < len(it.overlayKeys)
		switch {
		case haveBase && haveOverlay:
			bk := string(it.base.Key())
			ok := it.overlayKeys[it.oi]
			switch {
			case bk < ok:
				if _, deleted := it.c.del[bk]; deleted {
					continue
				}
				it.cur = [2][]byte{it.base.Key(), it.base.Value()}
				return true
			case bk > ok:
				it.emitOverlay()
				return true
			default:
				it.emitOverlay()
				continue
			}
		case haveBase:
			bk := string(it.base.Key())
			if _, deleted := it.c.del[bk]; deleted {
				continue
			}
			it.cur = [2][]byte{it.base.Key(), it.base.Value()}
			return true
		case haveOverlay:
			it.emitOverlay()
			return true
		default:
			return false
		}
	}
}

func (it *cachedIterator) emitOverlay() {
	k := it.overlayKeys[it.oi]
	it.cur = [2][]byte{[]byte(k), it.c.set[k]}
	it.oi++
}

func (it *cachedIterator) Key() []byte   { return it.cur[0] }
func (it *cachedIterator) Value() []byte { return it.cur[1] }
func (it *cachedIterator) Err() error     { return it.base.Err() }
func (it *cachedIterator) Release()       { it.base.Release() }
