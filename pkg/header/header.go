// Package header defines the block header wire type that ties together
// the two committed roots of spec.md §4.5 into the entire root a light
// client or circuit verifier ultimately checks against.
package header

import (
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/commitment"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// Header is the minimal per-block commitment this SDK produces. Anything
// beyond the roots and identity needed to verify a block's state
// transition (proposer sets, gas accounting, timestamps beyond BlockTime)
// is the embedding application's concern.
type Header struct {
	ChainID              string
	BlockHeight          uint64
	BlockTime            types.Timestamp
	StateSparseTreeRoot  types.Hash
	KeysPatriciaTrieRoot types.Hash
}

// EntireRoot returns H(StateSparseTreeRoot ‖ KeysPatriciaTrieRoot), the
// single commitment downstream verification checks.
func (h Header) EntireRoot() types.Hash {
	return commitment.EntireRoot(h.StateSparseTreeRoot, h.KeysPatriciaTrieRoot)
}
