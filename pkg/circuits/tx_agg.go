package circuits

import (
	"fmt"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// PublicInputTxAgg is the TxAgg circuit's public input: it proves that two
// adjacent proven transaction subtrees (left, right) compose into one,
// carrying the accum_diffs chain through the midpoint and the entire
// state root both sides were constrained against.
type PublicInputTxAgg struct {
	TxRoot                  types.Hash
	AccumDiffsHashLeftPrev  types.Hash
	AccumDiffsHashRightNext types.Hash
	EntireStateRoot         types.Hash
}

// PrivateInputTxAgg is the TxAgg circuit's witness: a flattened view of the
// two child proofs' public inputs, generalized over whether a child is a
// leaf Tx proof or itself the output of an earlier TxAgg — the aggregation
// tree spec.md §8 describes is binary and arbitrarily deep, so a child's
// "tx root" may already be a tx_root rather than a single tx_hash.
type PrivateInputTxAgg struct {
	TxRootLeft  types.Hash
	TxRootRight types.Hash

	AccumDiffsHashLeftPrev  types.Hash
	AccumDiffsHashLeftNext  types.Hash
	AccumDiffsHashRightPrev types.Hash
	AccumDiffsHashRightNext types.Hash

	EntireStateRootLeft  types.Hash
	EntireStateRootRight types.Hash

	ProofLeft  []byte
	ProofRight []byte
}

// NewPrivateInputTxAggFromTx builds a TxAgg witness aggregating two leaf Tx
// circuit proofs.
func NewPrivateInputTxAggFromTx(left, right PublicInputTx, proofLeft, proofRight []byte) *PrivateInputTxAgg {
	return &PrivateInputTxAgg{
		TxRootLeft:              left.TxHash,
		TxRootRight:             right.TxHash,
		AccumDiffsHashLeftPrev:  left.AccumDiffsHashPrev,
		AccumDiffsHashLeftNext:  left.AccumDiffsHashNext,
		AccumDiffsHashRightPrev: right.AccumDiffsHashPrev,
		AccumDiffsHashRightNext: right.AccumDiffsHashNext,
		EntireStateRootLeft:     left.EntireStateRoot,
		EntireStateRootRight:    right.EntireStateRoot,
		ProofLeft:               proofLeft,
		ProofRight:              proofRight,
	}
}

// NewPrivateInputTxAggFromAgg builds a TxAgg witness aggregating two
// previously aggregated TxAgg proofs, one level further up the tree.
func NewPrivateInputTxAggFromAgg(left, right PublicInputTxAgg, proofLeft, proofRight []byte) *PrivateInputTxAgg {
	return &PrivateInputTxAgg{
		TxRootLeft:              left.TxRoot,
		TxRootRight:             right.TxRoot,
		AccumDiffsHashLeftPrev:  left.AccumDiffsHashLeftPrev,
		AccumDiffsHashLeftNext:  left.AccumDiffsHashRightNext,
		AccumDiffsHashRightPrev: right.AccumDiffsHashLeftPrev,
		AccumDiffsHashRightNext: right.AccumDiffsHashRightNext,
		EntireStateRootLeft:     left.EntireStateRoot,
		EntireStateRootRight:    right.EntireStateRoot,
		ProofLeft:               proofLeft,
		ProofRight:              proofRight,
	}
}

// Public verifies this witness and derives its PublicInputTxAgg.
//
// spec.md §8 mandates the aggregation-chaining assertion the reference
// implementation's circuit_tx_agg never made
// (original_source/src/block/zkp_tx_agg.rs computes txs_root and passes
// every other field through unchecked): the left subtree's
// accum_diffs_hash_next must equal the right subtree's
// accum_diffs_hash_prev, and both sides must have been constrained
// against the same entire_state_root, or two unrelated proofs could be
// "aggregated" into one that attests to nothing.
func (p *PrivateInputTxAgg) Public() (PublicInputTxAgg, error) {
	if p.AccumDiffsHashLeftNext != p.AccumDiffsHashRightPrev {
		return PublicInputTxAgg{}, fmt.Errorf("circuits: tx agg: %w: left.accum_diffs_hash_next != right.accum_diffs_hash_prev", ErrChainMismatch)
	}
	if p.EntireStateRootLeft != p.EntireStateRootRight {
		return PublicInputTxAgg{}, fmt.Errorf("circuits: tx agg: %w: left.entire_root != right.entire_root", ErrChainMismatch)
	}

	return PublicInputTxAgg{
		TxRoot:                  types.H(p.TxRootLeft[:], p.TxRootRight[:]),
		AccumDiffsHashLeftPrev:  p.AccumDiffsHashLeftPrev,
		AccumDiffsHashRightNext: p.AccumDiffsHashRightNext,
		EntireStateRoot:         p.EntireStateRootLeft,
	}, nil
}
