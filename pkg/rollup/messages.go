// Package rollup implements the single-producer sequencer loop of spec.md
// §4.7: a per-transaction (not per-batch) execution loop that threads a
// running CompressedDiffs snapshot from one transaction to the next,
// builds each transaction's circuit witness, and emits progress messages
// an aggregation/proving pipeline downstream consumes.
package rollup

import (
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/circuits"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// MessageKind identifies which variant of Message is populated.
type MessageKind uint8

const (
	MessageTxReceived MessageKind = iota
	MessageTxProofReady
	MessageBlockCommitted
	MessageTxProved
	MessageTxProofAggregated
	MessageStateRootProved
	MessageKeysRootProved
	MessageBlockProved
)

// Message is one entry in the sequencer's runner protocol: the set of
// events that drive a transaction from submission through proving and
// aggregation to a committed block. Exactly one of the Kind-named fields
// below is populated, matching Kind.
type Message struct {
	Kind MessageKind

	TxReceived        *TxReceived
	TxProofReady      *TxProofReady
	BlockCommitted    *BlockCommitted
	TxProved          *TxProved
	TxProofAggregated *TxProofAggregated
	StateRootProved   *StateRootProved
	KeysRootProved    *KeysRootProved
	BlockProved       *BlockProved
}

// TxReceived carries a newly submitted transaction into the sequencer.
type TxReceived struct {
	Tx circuits.Tx
}

// TxProofReady announces that a transaction's circuit witness has been
// assembled and is ready to be handed to a prover.
type TxProofReady struct {
	ChainID     string
	BlockHeight uint64
	TxIndex     int
	Inputs      circuits.PrivateInputTx
}

// BlockCommitted announces that every transaction in a block has been
// executed and the block's final state has been committed.
type BlockCommitted struct {
	ChainID     string
	BlockHeight uint64
}

// TxProved carries a completed transaction proof back from a prover.
type TxProved struct {
	ChainID     string
	BlockHeight uint64
	TxIndex     int
	Proof       []byte
}

// TxProofAggregated announces that two adjacent transaction proofs, at
// positions (left, right) within the block, have been folded into one by
// the TxAgg circuit.
type TxProofAggregated struct {
	ChainID      string
	BlockHeight  uint64
	TxIndexLeft  int
	TxIndexRight int
	Proof        []byte
}

// StateRootProved announces that the CommitState circuit has proved the
// sparse tree's transition for this block.
type StateRootProved struct {
	ChainID     string
	BlockHeight uint64
	StateRoot   types.Hash
}

// KeysRootProved announces that the CommitKeys circuit has proved the keys
// trie's transition for this block.
type KeysRootProved struct {
	ChainID     string
	BlockHeight uint64
	KeysRoot    types.Hash
}

// BlockProved announces that the Block circuit has proved the entire
// block, yielding the next entire_state_root.
type BlockProved struct {
	ChainID         string
	BlockHeight     uint64
	EntireStateRoot types.Hash
}
