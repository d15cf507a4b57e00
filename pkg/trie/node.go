package trie

import "github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"

// Node is a nibble Patricia trie node: either a Leaf or a Branch. There is
// no extension node: a branch's own key_fragment plays that role directly.
type Node interface {
	node()
}

// Leaf stores a value at the end of a key path.
type Leaf struct {
	// KeyFragment is the remaining nibbles from this node's position in
	// the trie down to the leaf; together with the path consumed by its
	// ancestors it reconstructs the leaf's full key.
	KeyFragment []Nibble
	Value       []byte
}

func (Leaf) node() {}

// Hash returns H(NibblesAsBytes(KeyFragment) ‖ Value).
func (l Leaf) Hash() types.Hash {
	return types.H(NibblesAsBytes(l.KeyFragment), l.Value)
}

// Branch is an interior node with up to 16 children, one per nibble value.
// Children[i] holds the child's own key fragment (not its full node) so a
// proof can reconstruct the child's full path and hash without loading the
// child itself.
type Branch struct {
	KeyFragment []Nibble
	Children    [16][]Nibble
}

func (Branch) node() {}

// HasChild reports whether a child exists at nibble i.
func (b Branch) HasChild(i Nibble) bool {
	return b.Children[i] != nil
}

// ChildHashFunc resolves the hash of the child at nibble i, reporting false
// if that subtree carries no hash (every descendant absent).
type ChildHashFunc func(i Nibble) (types.Hash, bool)

// Hash returns H(NibblesAsBytes(KeyFragment) ‖ for every present child in
// ascending nibble order: index_byte ‖ child_hash), skipping children whose
// hash is absent. It reports (ZeroHash, false) if no child contributed a
// hash, matching the reference definition that an all-absent branch has no
// hash of its own.
func (b Branch) Hash(childHash ChildHashFunc) (types.Hash, bool) {
	var buf []byte
	any := false
	for i := Nibble(0); i < 16; i++ {
		if b.Children[i] == nil {
			continue
		}
		h, ok := childHash(i)
		if !ok {
			continue
		}
		any = true
		buf = append(buf, byte(i))
		buf = append(buf, h[:]...)
	}
	if !any {
		return types.ZeroHash, false
	}
	return types.H(NibblesAsBytes(b.KeyFragment), buf), true
}
