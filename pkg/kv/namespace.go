package kv

// Namespaced wraps a Store and transparently prepends a fixed prefix to
// every key, so independent modules (spec.md §6: app modules, trie node
// storage, sequencer bookkeeping) can share one backing Store without key
// collisions. It is adapted from the teacher's PrefixedStore.
type Namespaced struct {
	inner  Store
	prefix []byte
}

// NewNamespaced returns a view of inner scoped to prefix. Closing the
// returned Store does not close inner.
func NewNamespaced(inner Store, prefix string) *Namespaced {
	return &Namespaced{inner: inner, prefix: []byte(prefix)}
}

func (n *Namespaced) key(k []byte) []byte {
	out := make([]byte, 0, len(n.prefix)+len(k))
	out = append(out, n.prefix...)
	out = append(out, k...)
	return out
}

func (n *Namespaced) Get(key []byte) ([]byte, error) {
	return n.inner.Get(n.key(key))
}

func (n *Namespaced) Set(key, value []byte) error {
	return n.inner.Set(n.key(key), value)
}

func (n *Namespaced) Del(key []byte) error {
	return n.inner.Del(n.key(key))
}

func (n *Namespaced) Close() error { return nil }

func (n *Namespaced) Iter(r Range) Iterator {
	scoped := Prefix(n.prefix)
	if r.Start.Kind != Unbounded {
		scoped.Start = Bound{Kind: r.Start.Kind, Key: n.key(r.Start.Key)}
	}
	if r.End.Kind != Unbounded {
		scoped.End = Bound{Kind: r.End.Kind, Key: n.key(r.End.Key)}
	}
	return &namespacedIterator{inner: n.inner.Iter(scoped), prefixLen: len(n.prefix)}
}

type namespacedIterator struct {
	inner     Iterator
	prefixLen int
}

func (it *namespacedIterator) Next() bool { return it.inner.Next() }

func (it *namespacedIterator) Key() []byte {
	return it.inner.Key()[it.prefixLen:]
}

func (it *namespacedIterator) Value() []byte { return it.inner.Value() }

func (it *namespacedIterator) Err() error { return it.inner.Err() }

func (it *namespacedIterator) Release() { it.inner.Release() }
