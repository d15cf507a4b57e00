package trie

import (
	"testing"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// threeEntryTrie builds the trie { {1,2}: "a", {1,3}: "b", {2,2}: "c" },
// the concrete scenario used throughout the reference implementation's own
// trie tests.
func threeEntryTrie(t *testing.T) (NodeStore, map[string][]Nibble) {
	t.Helper()
	store := NewMemoryNodeStore()
	entries := []Entry{
		{Key: []Nibble{1, 2}, Value: []byte("a")},
		{Key: []Nibble{1, 3}, Value: []byte("b")},
		{Key: []Nibble{2, 2}, Value: []byte("c")},
	}
	if _, err := Build(store, entries); err != nil {
		t.Fatalf("Build: %v", err)
	}
	keys := map[string][]Nibble{
		"a": {1, 2},
		"b": {1, 3},
		"c": {2, 2},
	}
	return store, keys
}

func TestBuildProducesDeterministicRoot(t *testing.T) {
	store1, _ := threeEntryTrie(t)
	store2, _ := threeEntryTrie(t)

	h1, _, _ := store1.GetNodeHash(nil)
	h2, _, _ := store2.GetNodeHash(nil)
	if h1 != h2 {
		t.Fatalf("root hash not deterministic: %s != %s", h1, h2)
	}
	if h1.Hex() == "" {
		t.Fatal("root hash unexpectedly empty")
	}
}

func TestRootPathReconstructsRootFromClaimedLeaves(t *testing.T) {
	store, keys := threeEntryTrie(t)
	wantRoot, ok, err := store.GetNodeHash(nil)
	if err != nil || !ok {
		t.Fatalf("no root hash stored: ok=%v err=%v", ok, err)
	}

	rp, err := BuildRootPath(store, [][]Nibble{keys["a"], keys["b"]})
	if err != nil {
		t.Fatalf("BuildRootPath: %v", err)
	}

	got, err := rp.Root([]ClaimedLeaf{
		{Key: keys["a"], Value: []byte("a")},
		{Key: keys["b"], Value: []byte("b")},
	}, nil)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if got != wantRoot {
		t.Errorf("reconstructed root = %s, want %s", got, wantRoot)
	}
}

func TestRootRejectsWrongClaimedValue(t *testing.T) {
	store, keys := threeEntryTrie(t)
	wantRoot, _, _ := store.GetNodeHash(nil)

	rp, err := BuildRootPath(store, [][]Nibble{keys["a"]})
	if err != nil {
		t.Fatalf("BuildRootPath: %v", err)
	}

	got, err := rp.Root([]ClaimedLeaf{{Key: keys["a"], Value: []byte("tampered")}}, nil)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if got == wantRoot {
		t.Error("tampered leaf value still reconstructed the true root")
	}
}

func TestVerifyNonInclusion(t *testing.T) {
	store, _ := threeEntryTrie(t)

	// key {1,4} shares the branch split at depth 1 (nibble 1) with "a"/"b"
	// but no child exists for nibble 4 there.
	absent := []Nibble{1, 4}
	rp, err := BuildRootPath(store, [][]Nibble{absent})
	if err != nil {
		t.Fatalf("BuildRootPath: %v", err)
	}
	if err := rp.VerifyNonInclusion(absent); err != nil {
		t.Errorf("VerifyNonInclusion({1,4}) = %v, want nil", err)
	}
}

func TestVerifyNonInclusionRejectsPresentKey(t *testing.T) {
	store, keys := threeEntryTrie(t)
	rp, err := BuildRootPath(store, [][]Nibble{keys["a"]})
	if err != nil {
		t.Fatalf("BuildRootPath: %v", err)
	}
	if err := rp.VerifyNonInclusion(keys["a"]); err == nil {
		t.Error("VerifyNonInclusion accepted a key that is actually present")
	}
}

func TestNibblesAsBytesRoundTrip(t *testing.T) {
	cases := [][]Nibble{
		{},
		{5},
		{1, 2},
		{1, 2, 3},
		{0xf, 0x0, 0x1, 0x2, 0xa},
	}
	for _, c := range cases {
		got := BytesAsNibbles(NibblesAsBytes(c))
		if len(got) != len(c) {
			t.Fatalf("round trip %v -> %v: length mismatch", c, got)
		}
		for i := range c {
			if got[i] != c[i] {
				t.Fatalf("round trip %v -> %v: mismatch at %d", c, got, i)
			}
		}
	}
}

func TestVerifyIterCompletenessAcceptsExhaustiveClaim(t *testing.T) {
	store, keys := threeEntryTrie(t)

	rp, err := BuildRootPath(store, [][]Nibble{keys["a"], keys["b"]})
	if err != nil {
		t.Fatalf("BuildRootPath: %v", err)
	}

	if err := rp.VerifyIterCompleteness([]Nibble{1}, [][]Nibble{keys["a"], keys["b"]}); err != nil {
		t.Errorf("VerifyIterCompleteness(prefix={1}, {a,b}) = %v, want nil", err)
	}
}

func TestVerifyIterCompletenessRejectsOmittedKey(t *testing.T) {
	store, keys := threeEntryTrie(t)

	rp, err := BuildRootPath(store, [][]Nibble{keys["a"], keys["b"]})
	if err != nil {
		t.Fatalf("BuildRootPath: %v", err)
	}

	// Claiming only "a" is under prefix {1} omits the sibling leaf "b",
	// which this proof's branch at {1} still has a child for.
	if err := rp.VerifyIterCompleteness([]Nibble{1}, [][]Nibble{keys["a"]}); err == nil {
		t.Error("VerifyIterCompleteness accepted a claim that omits a present key")
	}
}

func TestVerifyIterCompletenessRejectsMissingSiblingSubtree(t *testing.T) {
	store, keys := threeEntryTrie(t)

	// A proof built only toward "a" and "b" never resolves the root's
	// other child (leaf "c"); claiming {a,b} as the *entire* trie (prefix
	// = {}) must fail since "c" is hidden behind an opaque sibling hash.
	rp, err := BuildRootPath(store, [][]Nibble{keys["a"], keys["b"]})
	if err != nil {
		t.Fatalf("BuildRootPath: %v", err)
	}

	if err := rp.VerifyIterCompleteness(nil, [][]Nibble{keys["a"], keys["b"]}); err == nil {
		t.Error("VerifyIterCompleteness accepted an incomplete claim over the whole trie")
	}
}

func TestBranchHashAbsentWhenAllChildrenAbsent(t *testing.T) {
	var b Branch
	b.KeyFragment = []Nibble{1}
	if _, ok := b.Hash(func(Nibble) (types.Hash, bool) { return types.ZeroHash, false }); ok {
		t.Error("branch with no children should have no hash")
	}
}
