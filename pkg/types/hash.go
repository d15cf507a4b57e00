// Package types holds the small set of primitives shared across the
// InterLiquid SDK: the 32-byte hash type every root and digest in this
// repository is expressed in, and the block timestamp type. Address typing,
// fixed-point arithmetic, and Borsh-equivalent serialization are treated as
// external primitives per the project's scope and are not re-implemented
// here.
package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Hash is the 32-byte digest type used for every root, commitment, and node
// hash in this SDK (state root, keys root, entire root, trie node hashes,
// tx hash, accum-diffs hash, ...).
type Hash = common.Hash

// ZeroHash is the all-zero Hash, used as the sentinel "no hash" value for
// branch nodes whose children are all absent.
var ZeroHash = Hash{}

// H is the hash function spec.md refers to throughout as H(...): Keccak-256
// over the concatenation of its arguments. Every trie node hash, the entire
// root, and every circuit digest in this repository route through this
// single function so that changing the hash primitive never touches more
// than one place.
func H(parts ...[]byte) Hash {
	return crypto.Keccak256Hash(parts...)
}
