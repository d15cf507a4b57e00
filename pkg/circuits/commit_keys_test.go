package circuits

import (
	"errors"
	"testing"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/commitment"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/state"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
)

func buildCommitKeysWitness(t *testing.T) *PrivateInputPatriciaTrie {
	t.Helper()

	store := trie.NewMemoryNodeStore()
	keysTrie := commitment.NewKeysTrie(store)
	rootPrev, err := keysTrie.Build([][]byte{[]byte("alice/balance")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	accum := state.NewAccumulatedLogs()
	accum.Iters = append(accum.Iters, state.IterLog{
		Range: kv.Prefix([]byte("alice/")),
		Keys:  [][]byte{[]byte("alice/balance")},
	})
	accum.Diffs.Diffs["bob/balance"] = state.ValueDiff{Before: nil, After: []byte("50")}

	proof, err := keysTrie.ProveKeys([][]byte{[]byte("alice/balance"), []byte("bob/balance")})
	if err != nil {
		t.Fatalf("ProveKeys: %v", err)
	}

	return &PrivateInputPatriciaTrie{
		KeysRootPrev:   rootPrev,
		AccumLogsFinal: accum,
		KeysForAccess:  [][]byte{[]byte("alice/balance")},
		KeysCommitPath: proof,
	}
}

func TestPrivateInputPatriciaTriePublicReconstructsBothRoots(t *testing.T) {
	priv := buildCommitKeysWitness(t)

	expectedStore := trie.NewMemoryNodeStore()
	wantNext, err := commitment.NewKeysTrie(expectedStore).Build([][]byte{
		[]byte("alice/balance"),
		[]byte("bob/balance"),
	})
	if err != nil {
		t.Fatalf("Build expected next: %v", err)
	}

	pub, err := priv.Public()
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	if pub.KeysPatriciaTrieRootPrev != priv.KeysRootPrev {
		t.Errorf("KeysPatriciaTrieRootPrev = %s, want %s", pub.KeysPatriciaTrieRootPrev, priv.KeysRootPrev)
	}
	if pub.KeysPatriciaTrieRootNext != wantNext {
		t.Errorf("KeysPatriciaTrieRootNext = %s, want %s", pub.KeysPatriciaTrieRootNext, wantNext)
	}
}

func TestPrivateInputPatriciaTriePublicRejectsIncompleteIteration(t *testing.T) {
	store := trie.NewMemoryNodeStore()
	keysTrie := commitment.NewKeysTrie(store)
	rootPrev, err := keysTrie.Build([][]byte{[]byte("alice/balance"), []byte("alice/nonce")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	accum := state.NewAccumulatedLogs()
	// A scan over the "alice/" prefix that omits "alice/nonce" claims an
	// incomplete key set.
	accum.Iters = append(accum.Iters, state.IterLog{
		Range: kv.Prefix([]byte("alice/")),
		Keys:  [][]byte{[]byte("alice/balance")},
	})

	proof, err := keysTrie.ProveKeys([][]byte{[]byte("alice/balance"), []byte("alice/nonce")})
	if err != nil {
		t.Fatalf("ProveKeys: %v", err)
	}

	priv := &PrivateInputPatriciaTrie{
		KeysRootPrev:   rootPrev,
		AccumLogsFinal: accum,
		KeysForAccess:  [][]byte{[]byte("alice/balance"), []byte("alice/nonce")},
		KeysCommitPath: proof,
	}

	if _, err := priv.Public(); err == nil {
		t.Error("expected Public to reject an incomplete iteration claim")
	} else if !errors.Is(err, trie.ErrInvalidProof) {
		t.Errorf("expected trie.ErrInvalidProof, got %v", err)
	}
}
