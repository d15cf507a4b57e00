package state

// ValueDiff is the net change to a single key: the value before the first
// write observed and the value after the most recent one. A nil Before
// means the key was absent prior to any write in the folded sequence; a
// nil After means the key's final state is deleted.
type ValueDiff struct {
	Before []byte
	After  []byte
}

// CompressedDiffs is the per-key net effect of a sequence of Diff log
// records: one entry per key touched, independent of how many times it was
// written. It is what the Tx circuit hashes into accum_diffs_hash_prev/next
// and what a sequencer carries from one transaction's snapshot into the
// next's accum_diffs_prev.
type CompressedDiffs struct {
	Diffs map[string]ValueDiff
}

// NewCompressedDiffs returns an empty CompressedDiffs.
func NewCompressedDiffs() CompressedDiffs {
	return CompressedDiffs{Diffs: make(map[string]ValueDiff)}
}

// FromLogs builds a fresh CompressedDiffs from logs, considering only the
// Diff records and ignoring Read/Iter ones.
func FromLogs(logs []Log) CompressedDiffs {
	c := NewCompressedDiffs()
	c.ApplyLogs(logs)
	return c
}

// ApplyLogs folds logs' Diff records into c in order: a key's first
// occurrence records its Before as-is, every subsequent occurrence updates
// only After, so the final entry always carries the true pre-transaction
// value and the true post-transaction value regardless of how many times
// the key was rewritten in between.
func (c *CompressedDiffs) ApplyLogs(logs []Log) {
	if c.Diffs == nil {
		c.Diffs = make(map[string]ValueDiff)
	}
	for _, l := range logs {
		if l.Kind != LogDiff {
			continue
		}
		d := l.Diff
		key := string(d.Key)
		existing, ok := c.Diffs[key]
		if !ok {
			c.Diffs[key] = ValueDiff{Before: d.Before, After: d.After}
			continue
		}
		existing.After = d.After
		c.Diffs[key] = existing
	}
}

// Merge folds other's entries on top of c, treating other as having
// happened after c: a key present in both keeps c's Before and takes
// other's After; a key only in other is inserted as-is.
func (c *CompressedDiffs) Merge(other CompressedDiffs) {
	if c.Diffs == nil {
		c.Diffs = make(map[string]ValueDiff)
	}
	for key, d := range other.Diffs {
		existing, ok := c.Diffs[key]
		if !ok {
			c.Diffs[key] = d
			continue
		}
		existing.After = d.After
		c.Diffs[key] = existing
	}
}

// AccumulatedLogs is the fuller witness-building record a transaction
// leaves behind: not just the net diffs (needed to advance state) but also
// every read and range scan it performed (needed to prove the execution's
// view of prior state was consistent with the committed sparse tree and
// keys trie).
type AccumulatedLogs struct {
	// Reads maps an observed key to whether it was found, for every Read
	// log across the folded sequence. A key's last-observed Found wins.
	Reads map[string]bool
	// ReadValues maps a found key to the value last observed for it.
	ReadValues map[string][]byte
	// Iters is every range scan performed, in encounter order. Multiple
	// entries may cover overlapping or identical ranges; each is proved
	// independently against the keys trie.
	Iters []IterLog
	// Diffs is the net per-key write effect, as produced by FromLogs.
	Diffs CompressedDiffs
}

// NewAccumulatedLogs returns an empty AccumulatedLogs.
func NewAccumulatedLogs() AccumulatedLogs {
	return AccumulatedLogs{
		Reads:      make(map[string]bool),
		ReadValues: make(map[string][]byte),
		Diffs:      NewCompressedDiffs(),
	}
}

// AccumulateLogs folds logs into a fresh AccumulatedLogs.
func AccumulateLogs(logs []Log) AccumulatedLogs {
	a := NewAccumulatedLogs()
	a.Apply(logs)
	return a
}

// Apply folds logs into a, in order.
func (a *AccumulatedLogs) Apply(logs []Log) {
	if a.Reads == nil {
		a.Reads = make(map[string]bool)
	}
	if a.ReadValues == nil {
		a.ReadValues = make(map[string][]byte)
	}
	a.Diffs.ApplyLogs(logs)
	for _, l := range logs {
		switch l.Kind {
		case LogRead:
			a.Reads[string(l.Read.Key)] = l.Read.Found
			if l.Read.Found {
				a.ReadValues[string(l.Read.Key)] = l.Read.Value
			}
		case LogIter:
			a.Iters = append(a.Iters, *l.Iter)
		}
	}
}

// StateForAccess returns the key/value view a Tx circuit's witness needs:
// every key a Read found, mapped to the value seen for it. Keys read as
// absent are omitted, and keys observed only through an Iter are not
// included, since an IterLog records keys without their values.
func (a AccumulatedLogs) StateForAccess() map[string][]byte {
	out := make(map[string][]byte, len(a.ReadValues))
	for k, v := range a.ReadValues {
		out[k] = v
	}
	return out
}

// ReadKeys returns every key touched by a Read log, in no particular
// order.
func (a AccumulatedLogs) ReadKeys() [][]byte {
	out := make([][]byte, 0, len(a.Reads))
	for k := range a.Reads {
		out = append(out, []byte(k))
	}
	return out
}

// IterKeys returns every key touched by any Iter log, in no particular
// order and without deduplication.
func (a AccumulatedLogs) IterKeys() [][]byte {
	var out [][]byte
	for _, it := range a.Iters {
		out = append(out, it.Keys...)
	}
	return out
}
