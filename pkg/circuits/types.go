// Package circuits defines the public/private input shapes of spec.md
// §4.6's five circuit contracts — Tx, CommitState, CommitKeys, TxAgg, and
// Block — and the constructors that assemble a transaction's witness from
// a completed state.Transactional access log and the committed trees it
// ran against.
package circuits

import (
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// Tx is the minimal surface a transaction type must expose to be executed
// by the sequencer and hashed into a circuit's public input. Transaction
// encoding/signing/validation themselves are out of this SDK's scope
// (spec.md's Non-goals) and are left to the embedding application.
type Tx interface {
	Hash() types.Hash
}

// App executes a single transaction against a transactional state view.
// This is the same contract pkg/rollup.App declares to the sequencer;
// it is defined here, not there, so the Tx circuit's re-execution step
// (PrivateInputTx.Verify, in tx.go) can depend on it without pkg/circuits
// importing its own importer. pkg/rollup aliases its App name to this type.
type App interface {
	ExecuteTx(txState *state.Transactional, tx Tx) error
}
