package circuits

import (
	"fmt"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// keysPresenceValue is the value every keys-trie leaf carries, matching
// commitment.KeysTrie: presence is all that matters there.
var keysPresenceValue = []byte{}

// PublicInputPatriciaTrie is the CommitKeys circuit's public input: the
// keys trie analogue of PublicInputSparseTree.
type PublicInputPatriciaTrie struct {
	KeysPatriciaTrieRootPrev types.Hash
	KeysPatriciaTrieRootNext types.Hash
	AccumDiffsFinalHash      types.Hash
}

// PrivateInputPatriciaTrie is the CommitKeys circuit's witness: the keys
// trie analogue of PrivateInputSparseTree, plus the range scans a block's
// transactions performed against it.
type PrivateInputPatriciaTrie struct {
	// KeysRootPrev is the root this witness claims the keys trie held
	// before this block's writes; Public reconstructs it independently and
	// rejects the witness if it disagrees.
	KeysRootPrev types.Hash
	// AccumLogsFinal folds every Iter and Diff log across the block: Iters
	// drives the range-completeness checks below, Diffs drives both root
	// reconstructions (a key's presence, not its value, is what the keys
	// trie records) and is hashed into the public input.
	AccumLogsFinal state.AccumulatedLogs
	// KeysForAccess is every raw key the block observed to exist, whether
	// by direct read or by range scan, before this block's writes.
	KeysForAccess [][]byte
	// KeysCommitPath is the keys trie's root-path proof covering every key
	// in KeysForAccess, every key touched by a Diff, and every key visited
	// by an Iter (built by commitment.KeysTrie.ProveKeys), dense enough for
	// VerifyIterCompleteness to confirm each Iter's claimed key set is
	// exhaustive.
	KeysCommitPath *trie.RootPath
}

// Public verifies this witness and derives its PublicInputPatriciaTrie.
//
// Grounded on the reference implementation's circuit_commit_keys
// (original_source/src/block/zkp_commit_keys.rs), which performs the same
// two checks before reconstructing either root: that every recorded range
// scan's claimed key set is the complete set under its range (the
// reference calls an iteration-completeness verifier its own source tree
// never defines; VerifyIterCompleteness is this repository's from-scratch
// implementation of that missing contract), and that the previous root
// reconstructed from the witness's presence-only leaves matches
// KeysRootPrev.
func (p *PrivateInputPatriciaTrie) Public() (PublicInputPatriciaTrie, error) {
	for _, it := range p.AccumLogsFinal.Iters {
		claimed := make([][]trie.Nibble, len(it.Keys))
		for i, k := range it.Keys {
			claimed[i] = trie.BytesToNibbles(k)
		}
		prefix := iterPrefix(it.Range)
		if err := p.KeysCommitPath.VerifyIterCompleteness(prefix, claimed); err != nil {
			return PublicInputPatriciaTrie{}, fmt.Errorf("circuits: commit keys: range scan not proved complete: %w", err)
		}
	}

	prevLeaves, nextLeaves := keysClaimedLeaves(p.KeysForAccess, p.AccumLogsFinal.Diffs)

	rootPrev, err := p.KeysCommitPath.Root(prevLeaves, nil)
	if err != nil {
		return PublicInputPatriciaTrie{}, fmt.Errorf("circuits: commit keys: reconstruct prev root: %w", err)
	}
	if rootPrev != p.KeysRootPrev {
		return PublicInputPatriciaTrie{}, fmt.Errorf("circuits: commit keys: prev root: %w", ErrRootMismatch)
	}

	rootNext, err := p.KeysCommitPath.Root(nextLeaves, nil)
	if err != nil {
		return PublicInputPatriciaTrie{}, fmt.Errorf("circuits: commit keys: reconstruct next root: %w", err)
	}

	return PublicInputPatriciaTrie{
		KeysPatriciaTrieRootPrev: rootPrev,
		KeysPatriciaTrieRootNext: rootNext,
		AccumDiffsFinalHash:      HashCompressedDiffs(p.AccumLogsFinal.Diffs),
	}, nil
}

// iterPrefix recovers the nibble prefix VerifyIterCompleteness should scope
// its check to from a recorded range scan: the scan's start key when it is
// Included or Excluded (the kv.Prefix shape every range scan in this SDK
// uses), or the empty prefix (the whole trie) for an unbounded start.
func iterPrefix(r kv.Range) []trie.Nibble {
	if r.Start.Kind == kv.Unbounded {
		return nil
	}
	return trie.BytesToNibbles(r.Start.Key)
}

// keysClaimedLeaves builds the keys trie's claimed-leaf sets for the
// previous and next root reconstructions: a key only carries a leaf if it
// existed at that point in time, since the keys trie records presence, not
// value. KeysForAccess contributes to both (the block observed these keys
// to exist before any of its writes); a Diff contributes to prev if it had
// a Before value and to next if it still has an After value.
func keysClaimedLeaves(keysForAccess [][]byte, diffs state.CompressedDiffs) (prev, next []trie.ClaimedLeaf) {
	for _, key := range keysForAccess {
		leaf := trie.ClaimedLeaf{Key: trie.BytesToNibbles(key), Value: keysPresenceValue}
		prev = append(prev, leaf)
		next = append(next, leaf)
	}
	for key, d := range diffs.Diffs {
		nibbles := trie.BytesToNibbles([]byte(key))
		if d.Before != nil {
			prev = append(prev, trie.ClaimedLeaf{Key: nibbles, Value: keysPresenceValue})
		}
		if d.After != nil {
			next = append(next, trie.ClaimedLeaf{Key: nibbles, Value: keysPresenceValue})
		}
	}
	return prev, next
}
