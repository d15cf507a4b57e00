package commitment

import "github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"

// EntireRoot combines the sparse state tree root and the keys trie root
// into the single commitment spec.md calls entire_root: H(state_root ‖
// keys_root).
func EntireRoot(stateRoot, keysRoot types.Hash) types.Hash {
	return types.H(stateRoot[:], keysRoot[:])
}
