package circuits

import (
	"fmt"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/commitment"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// PublicInputSparseTree is the CommitState circuit's public input: it
// proves the sparse value tree advanced from state_sparse_tree_root_prev
// to state_sparse_tree_root_next by applying exactly the writes summarized
// in accum_diffs_final_hash.
type PublicInputSparseTree struct {
	StateSparseTreeRootPrev types.Hash
	StateSparseTreeRootNext types.Hash
	AccumDiffsFinalHash     types.Hash
}

// PrivateInputSparseTree is the CommitState circuit's witness: the claimed
// previous root, every read/diff a block's transactions folded into the
// sparse tree, and the root-path proof needed to reconstruct both the
// previous and next root from that material alone.
type PrivateInputSparseTree struct {
	// StateRootPrev is the root this witness claims the sparse tree held
	// before this block's writes; Public reconstructs it independently from
	// StateCommitPath and rejects the witness if it disagrees.
	StateRootPrev types.Hash
	// AccumLogsFinal folds every Read and Diff log across the block: Reads
	// drives the non-inclusion check below, Diffs is hashed into the public
	// input and chained into both root reconstructions.
	AccumLogsFinal state.AccumulatedLogs
	// StateForAccess is the raw key/value view the block's transactions
	// observed, keyed by raw key (not hashed) — the same map
	// AccumulatedLogs.StateForAccess would produce, carried explicitly so a
	// witness built across several transactions can merge more than one.
	StateForAccess map[string][]byte
	// StateCommitPath is the sparse tree's root-path proof covering every
	// key named by StateForAccess, AccumLogsFinal.Diffs, and any key read
	// as not-found, built by commitment.StateTree.ProveRead.
	StateCommitPath *trie.RootPath
}

// Public verifies this witness and derives its PublicInputSparseTree.
//
// It performs the three checks the reference implementation's non-stub
// circuit_commit_state makes (original_source/src/block/zkp_commit_state.rs):
// every key the block observed as absent must be proved absent from the
// committed tree; the previous root reconstructed from StateForAccess and
// each diff's Before value must equal StateRootPrev; and the next root is
// then reconstructed from StateForAccess and each diff's After value and
// returned as the new public root, without which a prover could commit any
// arbitrary next root regardless of what the diffs actually were.
func (p *PrivateInputSparseTree) Public() (PublicInputSparseTree, error) {
	for key, found := range p.AccumLogsFinal.Reads {
		if found {
			continue
		}
		if err := p.StateCommitPath.VerifyNonInclusion(commitment.HashedKey([]byte(key))); err != nil {
			return PublicInputSparseTree{}, fmt.Errorf("circuits: commit state: key %q not proved absent: %w", key, err)
		}
	}

	prevLeaves, nextLeaves := stateClaimedLeaves(p.StateForAccess, p.AccumLogsFinal.Diffs)

	rootPrev, err := p.StateCommitPath.Root(prevLeaves, nil)
	if err != nil {
		return PublicInputSparseTree{}, fmt.Errorf("circuits: commit state: reconstruct prev root: %w", err)
	}
	if rootPrev != p.StateRootPrev {
		return PublicInputSparseTree{}, fmt.Errorf("circuits: commit state: prev root: %w", ErrRootMismatch)
	}

	rootNext, err := p.StateCommitPath.Root(nextLeaves, nil)
	if err != nil {
		return PublicInputSparseTree{}, fmt.Errorf("circuits: commit state: reconstruct next root: %w", err)
	}

	return PublicInputSparseTree{
		StateSparseTreeRootPrev: rootPrev,
		StateSparseTreeRootNext: rootNext,
		AccumDiffsFinalHash:     HashCompressedDiffs(p.AccumLogsFinal.Diffs),
	}, nil
}

// stateClaimedLeaves builds the sparse tree's claimed-leaf sets for the
// previous and next root reconstructions: every key the block read or
// wrote contributes its pre-write value to prev and its post-write value
// to next, each keyed by the tree's hashed-key encoding. A key that was
// only read (never written) contributes the same value to both.
func stateClaimedLeaves(stateForAccess map[string][]byte, diffs state.CompressedDiffs) (prev, next []trie.ClaimedLeaf) {
	for key, value := range stateForAccess {
		leaf := trie.ClaimedLeaf{Key: commitment.HashedKey([]byte(key)), Value: value}
		prev = append(prev, leaf)
		next = append(next, leaf)
	}
	for key, d := range diffs.Diffs {
		k := commitment.HashedKey([]byte(key))
		if d.Before != nil {
			prev = append(prev, trie.ClaimedLeaf{Key: k, Value: d.Before})
		}
		if d.After != nil {
			next = append(next, trie.ClaimedLeaf{Key: k, Value: d.After})
		}
	}
	return prev, next
}
