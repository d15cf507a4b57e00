package rollup

import (
	"context"
	"sync"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/circuits"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/commitment"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/log"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// App executes a single transaction against a transactional state view.
// Transaction semantics themselves (decoding, signature checks, module
// routing) are the embedding application's responsibility and out of this
// SDK's scope. Defined as an alias of circuits.App: the Tx circuit's
// re-execution step (circuits.PrivateInputTx.Verify) needs the same
// contract, and pkg/circuits cannot import pkg/rollup without a cycle.
type App = circuits.App

// Config controls the sequencer's runtime behavior.
type Config struct {
	ChainID string
	// MessageBufferSize bounds how many in-flight messages the sequencer
	// will buffer on its inbound and outbound channels.
	MessageBufferSize int
}

// DefaultConfig returns a Config with sensible defaults for chainID.
func DefaultConfig(chainID string) Config {
	return Config{ChainID: chainID, MessageBufferSize: 256}
}

// Sequencer is the single-producer execution loop of spec.md §4.7: it
// receives transactions in order, executes each against a Transactional
// view seeded with the previous transaction's accumulated diffs, builds
// that transaction's Tx circuit witness, commits its writes to the
// backing store, and emits a TxProofReady message for the proving
// pipeline downstream.
type Sequencer struct {
	mu sync.Mutex

	cfg       Config
	app       App
	backing   kv.Store
	stateTree *commitment.StateTree
	keysTrie  *commitment.KeysTrie

	save *SaveData

	in  chan Message
	out chan Message

	log     *log.Logger
	metrics *Metrics
}

// NewSequencer constructs a Sequencer over backing, whose committed
// contents stateTree and keysTrie must already reflect.
func NewSequencer(
	cfg Config,
	app App,
	backing kv.Store,
	stateTree *commitment.StateTree,
	keysTrie *commitment.KeysTrie,
	blockHeight uint64,
	blockTime types.Timestamp,
) (*Sequencer, error) {
	stateRoot, err := stateTree.Root()
	if err != nil {
		return nil, err
	}
	keysRoot, err := keysTrie.Root()
	if err != nil {
		return nil, err
	}

	return &Sequencer{
		cfg:       cfg,
		app:       app,
		backing:   backing,
		stateTree: stateTree,
		keysTrie:  keysTrie,
		save:      NewSaveData(cfg.ChainID, blockHeight, blockTime, stateRoot, keysRoot),
		in:        make(chan Message, cfg.MessageBufferSize),
		out:       make(chan Message, cfg.MessageBufferSize),
		log:       log.Default().Module("rollup"),
		metrics:   NewMetrics(),
	}, nil
}

// Metrics returns the sequencer's prometheus instrumentation, for the
// caller to register with its own registry.
func (s *Sequencer) Metrics() *Metrics {
	return s.metrics
}

// Submit enqueues a transaction for execution, blocking only if the inbound
// buffer is full.
func (s *Sequencer) Submit(tx circuits.Tx) {
	s.in <- Message{Kind: MessageTxReceived, TxReceived: &TxReceived{Tx: tx}}
}

// Out returns the channel of messages the sequencer emits as it runs:
// currently TxProofReady, one per executed transaction.
func (s *Sequencer) Out() <-chan Message {
	return s.out
}

// Run drives the sequencer loop until ctx is cancelled or the inbound
// channel is closed. A transaction that fails to execute is logged and
// skipped rather than stopping the loop, matching the reference
// implementation's non-fatal handling of a failed TxReceived.
func (s *Sequencer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.in:
			if !ok {
				return
			}
			if msg.Kind != MessageTxReceived {
				continue
			}
			if err := s.handleTxReceived(msg.TxReceived.Tx); err != nil {
				s.log.Error("transaction execution failed", "error", err)
				s.metrics.TxFailures.Inc()
			}
		}
	}
}

// handleTxReceived executes tx, builds its witness, commits its writes,
// and emits a TxProofReady message.
func (s *Sequencer) handleTxReceived(tx circuits.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accumPrev := s.save.LastAccumDiffs()
	txState := state.New(s.backing, accumPrev)

	if err := s.app.ExecuteTx(txState, tx); err != nil {
		return err
	}

	priv, err := circuits.BuildPrivateInputTx(tx, txState, accumPrev, s.stateTree, s.keysTrie)
	if err != nil {
		return err
	}

	if err := txState.Commit(s.backing); err != nil {
		return err
	}

	accumLogs := state.AccumulateLogs(txState.Logs())
	accumLogs.Diffs = txState.AccumulatedNext()
	s.save.TxSnapshots = append(s.save.TxSnapshots, TxExecutionSnapshot{
		Logs:      txState.Logs(),
		AccumLogs: accumLogs,
	})
	s.metrics.TxExecuted.Inc()

	s.out <- Message{
		Kind: MessageTxProofReady,
		TxProofReady: &TxProofReady{
			ChainID:     s.save.ChainID,
			BlockHeight: s.save.BlockHeight,
			TxIndex:     len(s.save.TxSnapshots) - 1,
			Inputs:      *priv,
		},
	}
	return nil
}

// SaveData returns a copy of the sequencer's current block bookkeeping.
func (s *Sequencer) SaveData() SaveData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.save
}

// Close closes the inbound channel, causing Run to return once drained.
func (s *Sequencer) Close() {
	close(s.in)
}
