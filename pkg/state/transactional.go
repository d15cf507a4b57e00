package state

import (
	"sync"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
)

// Transactional wraps a committed kv.Store with a logging layer: every
// Get, Iter, and Set/Del against it appends a Log record, so that once a
// transaction finishes, its full access history is available to derive
// the witness the Tx circuit needs (state_for_access, accum_diffs) and the
// diff the sequencer applies to advance committed state.
//
// Writes accumulate in an in-memory overlay and are never visible to other
// Transactional instances until Commit is called; Get and Iter both
// transparently merge the overlay over the base store so a transaction
// observes its own writes.
type Transactional struct {
	mu sync.Mutex

	base      kv.Store
	accumPrev CompressedDiffs

	logs    []Log
	overlay map[string]ValueDiff
}

// New wraps base for transactional access. accumPrev is the accumulated
// diff set carried over from whatever transaction last touched base (empty
// for the first transaction in a block), and is consulted before base so
// that a chain of transactions within one block sees each other's writes
// even though none of them are committed to base until the sequencer
// applies them.
func New(base kv.Store, accumPrev CompressedDiffs) *Transactional {
	return &Transactional{
		base:      base,
		accumPrev: accumPrev,
		overlay:   make(map[string]ValueDiff),
	}
}

// getWithoutLogging resolves a key against the in-tx overlay, then
// accumPrev, then base, without appending a Log record. It is the shared
// core of Get and of internal lookups (e.g. Iter's merge) that must not
// themselves generate spurious Read logs.
func (t *Transactional) getWithoutLogging(key []byte) ([]byte, error) {
	if d, ok := t.overlay[string(key)]; ok {
		return d.After, nil
	}
	if d, ok := t.accumPrev.Diffs[string(key)]; ok {
		return d.After, nil
	}
	return t.base.Get(key)
}

// Get performs a logged lookup.
func (t *Transactional) Get(key []byte) ([]byte, error) {
	v, err := t.getWithoutLogging(key)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.logs = append(t.logs, readLog(key, v, v != nil))
	t.mu.Unlock()
	return v, nil
}

// Set performs a logged write. The Before value recorded is the value the
// key held immediately prior to this write, as observed through the
// overlay/accumPrev/base chain.
func (t *Transactional) Set(key, value []byte) error {
	before, err := t.getWithoutLogging(key)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.overlay[string(key)] = ValueDiff{Before: before, After: append([]byte(nil), value...)}
	t.logs = append(t.logs, diffLog(key, before, value))
	t.mu.Unlock()
	return nil
}

// Del performs a logged delete.
func (t *Transactional) Del(key []byte) error {
	before, err := t.getWithoutLogging(key)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.overlay[string(key)] = ValueDiff{Before: before, After: nil}
	t.logs = append(t.logs, diffLog(key, before, nil))
	t.mu.Unlock()
	return nil
}

// Iter returns a logging iterator over r. The returned iterator merges the
// in-tx overlay over the base store's range, in ascending key order,
// skipping overlay entries whose After is nil (deleted-within-tx keys).
//
// Completeness invariant: the IterLog recorded for this scan must list
// every key that exists under r at the time of the scan, even if the
// caller stops calling Next before exhausting the iterator. The reference
// implementation this SDK is derived from enforces that with a Drop impl
// that drains the remainder; Go has no destructors, so the same guarantee
// is implemented in Release, which always finishes draining the
// underlying range before recording the log. Callers must defer Release
// (the same discipline as database/sql.Rows) for the log to be correct;
// an iterator that is neither run to exhaustion by Next nor Released never
// appends to the log at all, rather than appending an incomplete one.
func (t *Transactional) Iter(r kv.Range) kv.Iterator {
	return &txIterator{t: t, base: t.base.Iter(r), rng: r}
}

type txIterator struct {
	t    *Transactional
	base kv.Iterator
	rng  kv.Range

	keys      [][]byte
	cur       [2][]byte
	finalized bool

	// overlay entries within rng, sorted and merged with base on first use.
	merged   []kv.Iterator
	pos      int
	overlayK [][]byte
	overlayV [][]byte
	oi       int
}

func (it *txIterator) ensureOverlay() {
	if it.overlayK != nil || it.t.overlay == nil {
		return
	}
	it.t.mu.Lock()
	for k, d := range it.t.overlay {
		if d.After == nil {
			continue
		}
		kb := []byte(k)
		if it.rng.Contains(kb) {
			it.overlayK = append(it.overlayK, kb)
			it.overlayV = append(it.overlayV, d.After)
		}
	}
	it.t.mu.Unlock()
	// simple insertion sort; overlay sizes within one transaction are small.
	for i := 1; i < len(it.overlayK); i++ {
		for j := i; j > 0 && string(it.overlayK[j]) < string(it.overlayK[j-1]); j-- {
			it.overlayK[j], it.overlayK[j-1] = it.overlayK[j-1], it.overlayK[j]
			it.overlayV[j], it.overlayV[j-1] = it.overlayV[j-1], it.overlayV[j]
		}
	}
}

func (it *txIterator) Next() bool {
	if it.finalized {
		return false
	}
	it.ensureOverlay()

	haveBase := it.base.Next()
	for {
		haveOverlay := it.oi < len(it.overlayK)
		switch {
		case haveBase && haveOverlay:
			bk := it.base.Key()
			ok := it.overlayK[it.oi]
			switch {
			case string(bk) < string(ok):
				it.emitBase()
				return true
			case string(bk) > string(ok):
				it.emitOverlay()
				return true
			default: // overlay shadows base
				it.emitOverlay()
				haveBase = it.base.Next()
				continue
			}
		case haveBase:
			it.emitBase()
			return true
		case haveOverlay:
			it.emitOverlay()
			return true
		default:
			it.finalize()
			return false
		}
	}
}

func (it *txIterator) emitBase() {
	k := append([]byte(nil), it.base.Key()...)
	v := append([]byte(nil), it.base.Value()...)
	it.keys = append(it.keys, k)
	it.cur = [2][]byte{k, v}
}

func (it *txIterator) emitOverlay() {
	k := it.overlayK[it.oi]
	v := it.overlayV[it.oi]
	it.oi++
	it.keys = append(it.keys, k)
	it.cur = [2][]byte{k, v}
}

func (it *txIterator) Key() []byte   { return it.cur[0] }
func (it *txIterator) Value() []byte { return it.cur[1] }
func (it *txIterator) Err() error    { return it.base.Err() }

// finalize drains any remaining entries (base and overlay) into it.keys
// without exposing them through Key/Value, then appends the completed
// IterLog. It is idempotent.
func (it *txIterator) finalize() {
	if it.finalized {
		return
	}
	it.ensureOverlay()
	for it.base.Next() {
		it.keys = append(it.keys, append([]byte(nil), it.base.Key()...))
	}
	for ; it.oi < len(it.overlayK); it.oi++ {
		it.keys = append(it.keys, it.overlayK[it.oi])
	}
	it.t.mu.Lock()
	it.t.logs = append(it.t.logs, iterLog(it.rng, it.keys))
	it.t.mu.Unlock()
	it.finalized = true
}

func (it *txIterator) Release() {
	it.finalize()
	it.base.Release()
}

// Logs returns every access log recorded so far, in order.
func (t *Transactional) Logs() []Log {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Log(nil), t.logs...)
}

// AccumulatedNext folds accumPrev and this transaction's own Diff logs into
// the accum_diffs_next the sequencer carries into the following
// transaction's snapshot.
func (t *Transactional) AccumulatedNext() CompressedDiffs {
	next := NewCompressedDiffs()
	next.Merge(t.accumPrev)
	next.ApplyLogs(t.Logs())
	return next
}

// Commit applies this transaction's net writes to dest.
func (t *Transactional) Commit(dest kv.Store) error {
	t.mu.Lock()
	overlay := make(map[string]ValueDiff, len(t.overlay))
	for k, v := range t.overlay {
		overlay[k] = v
	}
	t.mu.Unlock()

	for k, d := range overlay {
		if d.After == nil {
			if err := dest.Del([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := dest.Set([]byte(k), d.After); err != nil {
			return err
		}
	}
	return nil
}
