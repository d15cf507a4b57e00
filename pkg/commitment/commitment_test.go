package commitment

import (
	"testing"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
)

func TestStateTreeRoundTripProof(t *testing.T) {
	store := trie.NewMemoryNodeStore()
	tree := NewStateTree(store)

	entries := map[string][]byte{
		"alice/balance": []byte("100"),
		"bob/balance":   []byte("50"),
		"carol/balance": []byte("25"),
	}
	root, err := tree.Build(entries)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	rp, err := tree.ProveRead([][]byte{[]byte("alice/balance")})
	if err != nil {
		t.Fatalf("ProveRead: %v", err)
	}

	got, err := rp.Root([]trie.ClaimedLeaf{
		{Key: HashedKey([]byte("alice/balance")), Value: []byte("100")},
	}, nil)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if got != root {
		t.Errorf("reconstructed root = %s, want %s", got, root)
	}
}

func TestKeysTrieNonInclusion(t *testing.T) {
	store := trie.NewMemoryNodeStore()
	kt := NewKeysTrie(store)

	if _, err := kt.Build([][]byte{[]byte("alice/balance"), []byte("bob/balance")}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	rp, err := kt.ProveNonInclusion([]byte("carol/balance"))
	if err != nil {
		t.Fatalf("ProveNonInclusion: %v", err)
	}
	if err := rp.VerifyNonInclusion(trie.BytesToNibbles([]byte("carol/balance"))); err != nil {
		t.Errorf("VerifyNonInclusion = %v, want nil", err)
	}
}

func TestEntireRootCombinesBothRoots(t *testing.T) {
	stateStore := trie.NewMemoryNodeStore()
	keysStore := trie.NewMemoryNodeStore()

	stateRoot, _ := NewStateTree(stateStore).Build(map[string][]byte{"k": []byte("v")})
	keysRoot, _ := NewKeysTrie(keysStore).Build([][]byte{[]byte("k")})

	a := EntireRoot(stateRoot, keysRoot)
	b := EntireRoot(stateRoot, keysRoot)
	if a != b {
		t.Fatal("EntireRoot not deterministic")
	}
	if a == stateRoot || a == keysRoot {
		t.Error("EntireRoot should differ from either input root")
	}
}
