package circuits

import (
	"errors"
	"testing"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

func TestPrivateInputTxAggChainsMatchingProofs(t *testing.T) {
	entire := types.H([]byte("entire-root"))
	mid := types.H([]byte("mid-diffs"))

	left := PublicInputTx{
		TxHash:             types.H([]byte("tx-1")),
		AccumDiffsHashPrev: types.H([]byte("prev-diffs")),
		AccumDiffsHashNext: mid,
		EntireStateRoot:    entire,
	}
	right := PublicInputTx{
		TxHash:             types.H([]byte("tx-2")),
		AccumDiffsHashPrev: mid,
		AccumDiffsHashNext: types.H([]byte("next-diffs")),
		EntireStateRoot:    entire,
	}

	priv := NewPrivateInputTxAggFromTx(left, right, nil, nil)
	pub, err := priv.Public()
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	if pub.TxRoot != types.H(left.TxHash[:], right.TxHash[:]) {
		t.Error("TxRoot should be H(left.TxHash, right.TxHash)")
	}
	if pub.AccumDiffsHashLeftPrev != left.AccumDiffsHashPrev {
		t.Error("AccumDiffsHashLeftPrev should pass through from the left child")
	}
	if pub.AccumDiffsHashRightNext != right.AccumDiffsHashNext {
		t.Error("AccumDiffsHashRightNext should pass through from the right child")
	}
	if pub.EntireStateRoot != entire {
		t.Error("EntireStateRoot should pass through when both sides agree")
	}
}

// TestPrivateInputTxAggRejectsMismatchedMidpoint is spec.md §8 scenario 6:
// "a mismatch on the middle hash must fail."
func TestPrivateInputTxAggRejectsMismatchedMidpoint(t *testing.T) {
	entire := types.H([]byte("entire-root"))

	left := PublicInputTx{
		TxHash:             types.H([]byte("tx-1")),
		AccumDiffsHashNext: types.H([]byte("left-next")),
		EntireStateRoot:    entire,
	}
	right := PublicInputTx{
		TxHash:             types.H([]byte("tx-2")),
		AccumDiffsHashPrev: types.H([]byte("right-prev-does-not-match")),
		EntireStateRoot:    entire,
	}

	priv := NewPrivateInputTxAggFromTx(left, right, nil, nil)
	if _, err := priv.Public(); !errors.Is(err, ErrChainMismatch) {
		t.Errorf("Public error = %v, want ErrChainMismatch", err)
	}
}

func TestPrivateInputTxAggRejectsMismatchedEntireRoot(t *testing.T) {
	mid := types.H([]byte("mid-diffs"))

	left := PublicInputTx{
		TxHash:             types.H([]byte("tx-1")),
		AccumDiffsHashNext: mid,
		EntireStateRoot:    types.H([]byte("left-root")),
	}
	right := PublicInputTx{
		TxHash:             types.H([]byte("tx-2")),
		AccumDiffsHashPrev: mid,
		EntireStateRoot:    types.H([]byte("right-root")),
	}

	priv := NewPrivateInputTxAggFromTx(left, right, nil, nil)
	if _, err := priv.Public(); !errors.Is(err, ErrChainMismatch) {
		t.Errorf("Public error = %v, want ErrChainMismatch", err)
	}
}

func TestPrivateInputTxAggFromAggRecursivelyChains(t *testing.T) {
	entire := types.H([]byte("entire-root"))
	midOuter := types.H([]byte("mid-outer"))

	leftAgg := PublicInputTxAgg{
		TxRoot:                  types.H([]byte("left-subtree")),
		AccumDiffsHashLeftPrev:  types.H([]byte("far-left-prev")),
		AccumDiffsHashRightNext: midOuter,
		EntireStateRoot:         entire,
	}
	rightAgg := PublicInputTxAgg{
		TxRoot:                  types.H([]byte("right-subtree")),
		AccumDiffsHashLeftPrev:  midOuter,
		AccumDiffsHashRightNext: types.H([]byte("far-right-next")),
		EntireStateRoot:         entire,
	}

	priv := NewPrivateInputTxAggFromAgg(leftAgg, rightAgg, nil, nil)
	pub, err := priv.Public()
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	if pub.TxRoot != types.H(leftAgg.TxRoot[:], rightAgg.TxRoot[:]) {
		t.Error("TxRoot should be H(left.TxRoot, right.TxRoot) one level up the aggregation tree")
	}
	if pub.AccumDiffsHashLeftPrev != leftAgg.AccumDiffsHashLeftPrev {
		t.Error("AccumDiffsHashLeftPrev should thread through from the far left leaf")
	}
	if pub.AccumDiffsHashRightNext != rightAgg.AccumDiffsHashRightNext {
		t.Error("AccumDiffsHashRightNext should thread through from the far right leaf")
	}
}
