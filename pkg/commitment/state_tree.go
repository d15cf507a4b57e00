// Package commitment builds the two committed trees spec.md §4.5
// describes on top of pkg/trie's shared mechanics: the sparse value tree
// (state_sparse_tree_root), keyed by H(raw_key) at a fixed 64-nibble
// depth, and the keys Patricia trie (keys_patricia_trie_root), keyed by
// raw bytes at variable depth and holding no value beyond presence. The
// two roots combine into the entire root the Tx and block circuits
// ultimately constrain.
package commitment

import (
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// StateTree is the sparse value tree: every stored key is first hashed,
// so the tree's shape depends only on the number of stored keys, not on
// any structure in the raw key bytes, and every leaf sits at depth 64
// (32 bytes of hashed key, two nibbles per byte).
type StateTree struct {
	store trie.NodeStore
}

// NewStateTree wraps store as a StateTree.
func NewStateTree(store trie.NodeStore) *StateTree {
	return &StateTree{store: store}
}

// Build constructs the tree from a full raw-key/value snapshot and returns
// its root. A value of nil is dropped (absent), matching the tree holding
// no entry for deleted keys.
func (s *StateTree) Build(entries map[string][]byte) (types.Hash, error) {
	es := make([]trie.Entry, 0, len(entries))
	for k, v := range entries {
		if v == nil {
			continue
		}
		hk := types.H([]byte(k))
		es = append(es, trie.Entry{Key: trie.BytesToNibbles(hk[:]), Value: v})
	}
	return trie.Build(s.store, es)
}

// Root returns the tree's current root hash, or ZeroHash if the tree is
// empty.
func (s *StateTree) Root() (types.Hash, error) {
	h, ok, err := s.store.GetNodeHash(nil)
	if err != nil {
		return types.ZeroHash, err
	}
	if !ok {
		return types.ZeroHash, nil
	}
	return h, nil
}

// ProveRead builds a root-path proof covering the given raw keys, for use
// as the Tx circuit's read_proof_path witness.
func (s *StateTree) ProveRead(rawKeys [][]byte) (*trie.RootPath, error) {
	hashed := make([][]trie.Nibble, len(rawKeys))
	for i, k := range rawKeys {
		hk := types.H(k)
		hashed[i] = trie.BytesToNibbles(hk[:])
	}
	return trie.BuildRootPath(s.store, hashed)
}

// HashedKey returns the nibble path a raw key maps to in this tree.
func HashedKey(rawKey []byte) []trie.Nibble {
	hk := types.H(rawKey)
	return trie.BytesToNibbles(hk[:])
}
