package commitment

import (
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/trie"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// presenceValue is the value stored at every keys-trie leaf: presence is
// all that matters, so an empty, non-nil slice is used (nil would be
// indistinguishable from "no entry").
var presenceValue = []byte{}

// KeysTrie is the keys Patricia trie: one leaf per key that actually
// exists in state, keyed by the raw key bytes directly (unhashed, unlike
// StateTree), at whatever depth the keys' shared prefixes dictate. Its
// purpose is to let a circuit prove non-existence and range-iteration
// completeness without needing the full state tree.
type KeysTrie struct {
	store trie.NodeStore
}

// NewKeysTrie wraps store as a KeysTrie.
func NewKeysTrie(store trie.NodeStore) *KeysTrie {
	return &KeysTrie{store: store}
}

// Build constructs the trie from the full set of keys present in state
// and returns its root.
func (k *KeysTrie) Build(keys [][]byte) (types.Hash, error) {
	es := make([]trie.Entry, len(keys))
	for i, key := range keys {
		es[i] = trie.Entry{Key: trie.BytesToNibbles(key), Value: presenceValue}
	}
	return trie.Build(k.store, es)
}

// Root returns the trie's current root hash, or ZeroHash if empty.
func (k *KeysTrie) Root() (types.Hash, error) {
	h, ok, err := k.store.GetNodeHash(nil)
	if err != nil {
		return types.ZeroHash, err
	}
	if !ok {
		return types.ZeroHash, nil
	}
	return h, nil
}

// ProveNonInclusion builds a root-path proof that key is absent. It returns
// trie.ErrInvalidProof when key's descent ends at a leaf holding a different
// key rather than at a branch lacking the needed child.
func (k *KeysTrie) ProveNonInclusion(key []byte) (*trie.RootPath, error) {
	return trie.BuildRootPath(k.store, [][]trie.Nibble{trie.BytesToNibbles(key)})
}

// ProveKeys builds a root-path proof covering the given raw keys, for use
// as the Tx circuit's iter_proof_path witness (proving the exact key set
// observed by a range scan).
func (k *KeysTrie) ProveKeys(keys [][]byte) (*trie.RootPath, error) {
	nibbles := make([][]trie.Nibble, len(keys))
	for i, key := range keys {
		nibbles[i] = trie.BytesToNibbles(key)
	}
	return trie.BuildRootPath(k.store, nibbles)
}
