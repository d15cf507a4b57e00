package rollup

import (
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// TxExecutionSnapshot is everything retained from one transaction's
// execution: its raw access log and the accumulated view folded from it,
// kept so a later aggregation/proving pass can rebuild its witness without
// re-executing the transaction. AccumLogs.Diffs holds the block's net
// writes through this transaction (the accum_diffs_next it produced), not
// only this transaction's own writes.
type TxExecutionSnapshot struct {
	Logs      []state.Log
	AccumLogs state.AccumulatedLogs
}

// SaveData is the sequencer's persisted per-block bookkeeping: the block
// identity, the committed roots as of the start of the block, and every
// transaction snapshot executed against it so far.
type SaveData struct {
	ChainID              string
	BlockHeight          uint64
	BlockTime            types.Timestamp
	StateSparseTreeRoot  types.Hash
	KeysPatriciaTrieRoot types.Hash
	TxSnapshots          []TxExecutionSnapshot
}

// NewSaveData returns a SaveData for an empty block starting from the
// given committed roots.
func NewSaveData(chainID string, blockHeight uint64, blockTime types.Timestamp, stateRoot, keysRoot types.Hash) *SaveData {
	return &SaveData{
		ChainID:              chainID,
		BlockHeight:          blockHeight,
		BlockTime:            blockTime,
		StateSparseTreeRoot:  stateRoot,
		KeysPatriciaTrieRoot: keysRoot,
	}
}

// LastAccumDiffs returns the accum_diffs_next of the most recently executed
// transaction in this block, or an empty CompressedDiffs if none have run
// yet. This is what the next transaction in the block carries forward as
// its accum_diffs_prev.
func (s *SaveData) LastAccumDiffs() state.CompressedDiffs {
	if len(s.TxSnapshots) == 0 {
		return state.NewCompressedDiffs()
	}
	return s.TxSnapshots[len(s.TxSnapshots)-1].AccumLogs.Diffs
}
