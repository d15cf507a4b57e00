package circuits

import (
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// PublicInputBlock is the Block circuit's public input: it proves a full
// block of transactions, aggregated under tx_root, advanced the entire
// state root from state_root_prev to state_root_next.
type PublicInputBlock struct {
	TxRoot        types.Hash
	StateRootPrev types.Hash
	StateRootNext types.Hash
}

// PrivateInputBlock is the Block circuit's witness: every transaction hash
// and its proof in the block, the chain of accum_diffs hashes between
// them, the final folded diff set, and the post-block state needed to
// prove the CommitState/CommitKeys transitions.
type PrivateInputBlock struct {
	TxHashes         []types.Hash
	TxProofs         [][]byte
	AccumDiffsHashes []types.Hash
	AccumDiffsFinal  state.CompressedDiffs
	StateForCommit   map[string][]byte
}

// Public derives this witness's public input.
func (p *PrivateInputBlock) Public(txRoot, stateRootPrev, stateRootNext types.Hash) PublicInputBlock {
	return PublicInputBlock{
		TxRoot:        txRoot,
		StateRootPrev: stateRootPrev,
		StateRootNext: stateRootNext,
	}
}
