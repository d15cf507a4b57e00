package circuits

import (
	"errors"
	"testing"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/commitment"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

type stubTx struct {
	hash types.Hash
}

func (s stubTx) Hash() types.Hash { return s.hash }

type transferStubTx struct {
	to, amount string
	hash       types.Hash
}

func (t transferStubTx) Hash() types.Hash { return t.hash }

type transferStubApp struct{}

func (transferStubApp) ExecuteTx(txState *state.Transactional, tx Tx) error {
	t := tx.(transferStubTx)
	return txState.Set([]byte(t.to+"/balance"), []byte(t.amount))
}

func TestHashCompressedDiffsDeterministic(t *testing.T) {
	c := state.NewCompressedDiffs()
	c.Diffs["b"] = state.ValueDiff{Before: []byte("1"), After: []byte("2")}
	c.Diffs["a"] = state.ValueDiff{Before: nil, After: []byte("x")}

	h1 := HashCompressedDiffs(c)
	// Rebuild with keys inserted in the opposite order; the hash must not
	// depend on map iteration order.
	c2 := state.NewCompressedDiffs()
	c2.Diffs["a"] = state.ValueDiff{Before: nil, After: []byte("x")}
	c2.Diffs["b"] = state.ValueDiff{Before: []byte("1"), After: []byte("2")}
	h2 := HashCompressedDiffs(c2)

	if h1 != h2 {
		t.Errorf("hash depends on map order: %s != %s", h1, h2)
	}
}

func TestBuildPrivateInputTxCapturesReadsAndWrites(t *testing.T) {
	backing := kv.NewMemory()
	_ = backing.Set([]byte("alice/balance"), []byte("100"))
	stateStore := trie.NewMemoryNodeStore()
	keysStore := trie.NewMemoryNodeStore()

	stateTree := commitment.NewStateTree(stateStore)
	keysTrie := commitment.NewKeysTrie(keysStore)

	if _, err := stateTree.Build(map[string][]byte{"alice/balance": []byte("100")}); err != nil {
		t.Fatalf("stateTree.Build: %v", err)
	}
	if _, err := keysTrie.Build([][]byte{[]byte("alice/balance")}); err != nil {
		t.Fatalf("keysTrie.Build: %v", err)
	}

	txState := state.New(backing, state.NewCompressedDiffs())
	if _, err := txState.Get([]byte("alice/balance")); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := txState.Set([]byte("bob/balance"), []byte("50")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tx := stubTx{hash: types.H([]byte("tx-1"))}
	priv, err := BuildPrivateInputTx(tx, txState, state.NewCompressedDiffs(), stateTree, keysTrie)
	if err != nil {
		t.Fatalf("BuildPrivateInputTx: %v", err)
	}

	if priv.ReadProofPath == nil {
		t.Error("expected a read proof path from the Get on alice/balance")
	}
	if _, ok := priv.StateForAccess["alice/balance"]; !ok {
		t.Error("expected alice/balance in StateForAccess")
	}
	if found, ok := priv.Reads["alice/balance"]; !ok || !found {
		t.Error("expected alice/balance recorded as a found read")
	}
}

// TestPrivateInputTxVerifyReExecutesAndProves exercises the full Tx circuit
// contract end to end: it re-executes the transaction against a
// state.Related view seeded from the witness's own StateForAccess, and
// verifies the read proof actually resolves to the committed state root.
func TestPrivateInputTxVerifyReExecutesAndProves(t *testing.T) {
	backing := kv.NewMemory()
	_ = backing.Set([]byte("alice/balance"), []byte("100"))

	stateStore := trie.NewMemoryNodeStore()
	keysStore := trie.NewMemoryNodeStore()
	stateTree := commitment.NewStateTree(stateStore)
	keysTrie := commitment.NewKeysTrie(keysStore)
	if _, err := stateTree.Build(map[string][]byte{"alice/balance": []byte("100")}); err != nil {
		t.Fatalf("stateTree.Build: %v", err)
	}
	if _, err := keysTrie.Build([][]byte{[]byte("alice/balance")}); err != nil {
		t.Fatalf("keysTrie.Build: %v", err)
	}

	txState := state.New(backing, state.NewCompressedDiffs())
	tx := transferStubTx{to: "bob", amount: "10", hash: types.H([]byte("tx-1"))}
	if err := (transferStubApp{}).ExecuteTx(txState, tx); err != nil {
		t.Fatalf("ExecuteTx: %v", err)
	}

	priv, err := BuildPrivateInputTx(tx, txState, state.NewCompressedDiffs(), stateTree, keysTrie)
	if err != nil {
		t.Fatalf("BuildPrivateInputTx: %v", err)
	}

	pub, err := priv.Verify(transferStubApp{})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if pub.TxHash != tx.Hash() {
		t.Errorf("public TxHash = %s, want %s", pub.TxHash, tx.Hash())
	}
	wantEntireRoot := commitment.EntireRoot(priv.StateSparseTreeRoot, priv.KeysPatriciaTrieRoot)
	if pub.EntireStateRoot != wantEntireRoot {
		t.Errorf("EntireStateRoot = %s, want %s", pub.EntireStateRoot, wantEntireRoot)
	}
	if pub.AccumDiffsHashNext == pub.AccumDiffsHashPrev {
		t.Error("expected accum_diffs_hash_next to differ after bob/balance write")
	}
}

// TestPrivateInputTxVerifyRejectsForgedReadValue demonstrates that a
// witness claiming a different value than what the state tree actually
// committed is rejected: forging StateForAccess no longer lets the
// re-execution and public input through untouched.
func TestPrivateInputTxVerifyRejectsForgedReadValue(t *testing.T) {
	backing := kv.NewMemory()
	_ = backing.Set([]byte("alice/balance"), []byte("100"))

	stateStore := trie.NewMemoryNodeStore()
	keysStore := trie.NewMemoryNodeStore()
	stateTree := commitment.NewStateTree(stateStore)
	keysTrie := commitment.NewKeysTrie(keysStore)
	if _, err := stateTree.Build(map[string][]byte{"alice/balance": []byte("100")}); err != nil {
		t.Fatalf("stateTree.Build: %v", err)
	}
	if _, err := keysTrie.Build([][]byte{[]byte("alice/balance")}); err != nil {
		t.Fatalf("keysTrie.Build: %v", err)
	}

	txState := state.New(backing, state.NewCompressedDiffs())
	if _, err := txState.Get([]byte("alice/balance")); err != nil {
		t.Fatalf("Get: %v", err)
	}
	tx := stubTx{hash: types.H([]byte("tx-1"))}
	priv, err := BuildPrivateInputTx(tx, txState, state.NewCompressedDiffs(), stateTree, keysTrie)
	if err != nil {
		t.Fatalf("BuildPrivateInputTx: %v", err)
	}

	priv.StateForAccess["alice/balance"] = []byte("999999")

	if _, err := priv.Verify(transferStubApp{}); err == nil {
		t.Fatal("expected Verify to reject a forged read value, got nil error")
	} else if !errors.Is(err, ErrRootMismatch) {
		t.Errorf("expected ErrRootMismatch, got %v", err)
	}
}

// TestPrivateInputTxVerifyRejectsForgedAbsence demonstrates that claiming a
// key was read-and-absent when the committed tree actually has it is
// rejected by the non-inclusion check.
func TestPrivateInputTxVerifyRejectsForgedAbsence(t *testing.T) {
	stateStore := trie.NewMemoryNodeStore()
	keysStore := trie.NewMemoryNodeStore()
	stateTree := commitment.NewStateTree(stateStore)
	keysTrie := commitment.NewKeysTrie(keysStore)
	if _, err := stateTree.Build(map[string][]byte{"alice/balance": []byte("100")}); err != nil {
		t.Fatalf("stateTree.Build: %v", err)
	}
	if _, err := keysTrie.Build([][]byte{[]byte("alice/balance")}); err != nil {
		t.Fatalf("keysTrie.Build: %v", err)
	}

	backing := kv.NewMemory()
	_ = backing.Set([]byte("alice/balance"), []byte("100"))
	txState := state.New(backing, state.NewCompressedDiffs())
	if _, err := txState.Get([]byte("alice/balance")); err != nil {
		t.Fatalf("Get: %v", err)
	}
	tx := stubTx{hash: types.H([]byte("tx-1"))}
	priv, err := BuildPrivateInputTx(tx, txState, state.NewCompressedDiffs(), stateTree, keysTrie)
	if err != nil {
		t.Fatalf("BuildPrivateInputTx: %v", err)
	}

	delete(priv.StateForAccess, "alice/balance")
	priv.Reads["alice/balance"] = false

	if _, err := priv.Verify(transferStubApp{}); err == nil {
		t.Fatal("expected Verify to reject a forged non-inclusion claim, got nil error")
	}
}
