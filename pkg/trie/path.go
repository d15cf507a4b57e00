package trie

import (
	"errors"
	"sort"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// Proof-layer sentinel errors, spec.md §7.
var (
	ErrInvalidProof   = errors.New("trie: invalid proof")
	ErrEmptyProof     = errors.New("trie: empty proof")
	ErrEmptyKeySet    = errors.New("trie: empty key set")
	ErrEmptyKeySuffix = errors.New("trie: empty key suffix")
)

// RootPath is a root-path proof: the set of branch nodes and sibling
// hashes needed to recompute the trie root given a claimed set of leaf
// values, or to prove one or more keys are absent. It is built by
// BuildRootPath and consumed by Root and VerifyNonInclusion.
type RootPath struct {
	branches map[string]pathBranch
	hashes   map[string]pathHash
}

type pathBranch struct {
	path   []Nibble
	branch Branch
}

type pathHash struct {
	path []Nibble
	hash types.Hash
}

func pathKey(path []Nibble) string {
	return string(NibblesAsBytes(path))
}

func newRootPath() *RootPath {
	return &RootPath{branches: make(map[string]pathBranch), hashes: make(map[string]pathHash)}
}

func (p *RootPath) markBranch(path []Nibble, b Branch) {
	p.branches[pathKey(path)] = pathBranch{path: append([]Nibble(nil), path...), branch: b}
}

func (p *RootPath) markHash(path []Nibble, h types.Hash) {
	k := pathKey(path)
	if _, ok := p.branches[k]; ok {
		// The sibling subtree is itself a branch we will separately
		// resolve as part of this proof; do not shadow it with a bare
		// hash entry.
		return
	}
	p.hashes[k] = pathHash{path: append([]Nibble(nil), path...), hash: h}
}

// BuildRootPath walks store from the root toward each key in leafKeys,
// recording every branch node traversed and the hash of every sibling
// subtree not itself traversed, so that Root can later recompute the trie
// root from just the claimed leaf values and this recorded material. It is
// the Go equivalent of the reference implementation's from_leafs.
//
// An absent key is covered only when its descent stops at a branch lacking
// the child it would need; when the descent instead ends at a leaf holding
// a different key, BuildRootPath returns ErrInvalidProof.
func BuildRootPath(store NodeStore, leafKeys [][]Nibble) (*RootPath, error) {
	if len(leafKeys) == 0 {
		return nil, ErrEmptyKeySet
	}
	rp := newRootPath()
	for _, key := range leafKeys {
		if err := walkAndMark(store, rp, key); err != nil {
			return nil, err
		}
	}
	return rp, nil
}

// walkAndMark descends from the root toward key, marking every branch
// visited and every unvisited sibling's hash, stopping either at the leaf
// position (inclusion) or at a branch lacking the next required child
// (non-inclusion).
func walkAndMark(store NodeStore, rp *RootPath, key []Nibble) error {
	path := []Nibble{}
	for {
		node, ok, err := store.GetNode(path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidProof
		}
		switch n := node.(type) {
		case Leaf:
			if !equalNibbles(append(append([]Nibble(nil), path...), n.KeyFragment...), key) {
				return ErrInvalidProof
			}
			return nil
		case Branch:
			rp.markBranch(path, n)
			splitPos := append(append([]Nibble(nil), path...), n.KeyFragment...)
			if len(splitPos) >= len(key) {
				return ErrInvalidProof
			}
			idx := key[len(splitPos)]
			for i := Nibble(0); i < 16; i++ {
				if i == idx || n.Children[i] == nil {
					continue
				}
				childPath := append(append([]Nibble(nil), splitPos...), i)
				if h, hok, herr := store.GetNodeHash(childPath); herr == nil && hok {
					rp.markHash(childPath, h)
				} else if herr != nil {
					return herr
				}
			}
			if n.Children[idx] == nil {
				// Non-inclusion: the child this key would need is absent.
				return nil
			}
			path = append(append([]Nibble(nil), splitPos...), idx)
		}
	}
}

// VerifyNonInclusion reports whether this proof demonstrates that key is
// absent from the trie: walking key's prefixes from longest to shortest,
// the first branch recorded in this proof whose split position is a
// prefix of key must lack the corresponding child.
func (p *RootPath) VerifyNonInclusion(key []Nibble) error {
	type candidate struct {
		splitPos []Nibble
		branch   Branch
	}
	var candidates []candidate
	for _, b := range p.branches {
		splitPos := append(append([]Nibble(nil), b.path...), b.branch.KeyFragment...)
		if len(splitPos) < len(key) && equalNibbles(splitPos, key[:len(splitPos)]) {
			candidates = append(candidates, candidate{splitPos: splitPos, branch: b.branch})
		}
	}
	if len(candidates) == 0 {
		return ErrInvalidProof
	}
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i].splitPos) > len(candidates[j].splitPos)
	})
	deepest := candidates[0]
	idx := key[len(deepest.splitPos)]
	if deepest.branch.Children[idx] != nil {
		return ErrInvalidProof
	}
	return nil
}

// VerifyIterCompleteness reports whether this proof demonstrates that
// claimedKeys is the *entire* set of keys under prefix, not merely a
// subset of it: for every branch recorded in this proof whose own split
// position falls within prefix's subtree, each of its present children
// must either be a branch this proof also resolves, or a subtree some
// claimed key actually descends into. A present child that is neither
// leaves an opaque hash a caller could have hidden an extra, unclaimed key
// behind, so that case is rejected. This is the "K and nothing else" half
// of a range proof that plain inclusion proofs (Root, VerifyNonInclusion)
// do not give: they confirm the claimed keys are present, never that
// nothing else is.
func (p *RootPath) VerifyIterCompleteness(prefix []Nibble, claimedKeys [][]Nibble) error {
	found := false
	for _, b := range p.branches {
		splitPos := append(append([]Nibble(nil), b.path...), b.branch.KeyFragment...)
		if !withinPrefix(splitPos, prefix) {
			continue
		}
		found = true
		for i := Nibble(0); i < 16; i++ {
			if !b.branch.HasChild(i) {
				continue
			}
			childPath := append(append([]Nibble(nil), splitPos...), i)
			if _, ok := p.branches[pathKey(childPath)]; ok {
				continue
			}
			if claimedKeyUnder(claimedKeys, childPath) {
				continue
			}
			return ErrInvalidProof
		}
	}
	if !found {
		return ErrEmptyProof
	}
	return nil
}

// claimedKeyUnder reports whether some entry in claimed has prefix as a
// nibble-prefix of its own key — i.e. some claimed key actually descends
// into the subtree rooted at prefix, as opposed to prefix merely matching a
// claimed key's own length exactly (a leaf's key fragment commonly extends
// well past the single nibble a branch child consumes).
func claimedKeyUnder(claimed [][]Nibble, prefix []Nibble) bool {
	for _, k := range claimed {
		if withinPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// withinPrefix reports whether prefix is a prefix of path, covering both a
// branch's split position landing inside prefix's subtree and prefix
// cutting partway through the branch's own key fragment.
func withinPrefix(path, prefix []Nibble) bool {
	if len(path) < len(prefix) {
		return false
	}
	return equalNibbles(path[:len(prefix)], prefix)
}

// ClaimedLeaf is a claimed (key, value) pair presented to Root for inclusion.
type ClaimedLeaf struct {
	Key   []Nibble
	Value []byte
}

// Root recomputes the trie root from this proof and a set of claimed leaf
// values. onBranch, if non-nil, is invoked once per resolved branch with
// its path and resolved hash (e.g. so a circuit witness can record the
// intermediate hashes it needs).
func (p *RootPath) Root(claimed []ClaimedLeaf, onBranch func(path []Nibble, h types.Hash)) (types.Hash, error) {
	if len(p.branches) == 0 && len(claimed) == 0 {
		return types.ZeroHash, ErrEmptyProof
	}

	resolved := make(map[string]types.Hash, len(p.hashes)+len(claimed))
	for k, h := range p.hashes {
		resolved[k] = h.hash
	}
	for _, leaf := range claimed {
		frag := leafFragment(p, leaf.Key)
		if len(p.branches) == 0 {
			// With no recorded branch the trie is a single leaf at the root,
			// whose fragment is its whole key.
			if !equalNibbles(leaf.Key, claimed[0].Key) {
				return types.ZeroHash, ErrInvalidProof
			}
			frag = leaf.Key
		}
		// A leaf node sits at its parent's split position plus one index
		// nibble, i.e. at its key minus its own fragment.
		nodePath := leaf.Key[:len(leaf.Key)-len(frag)]
		resolved[pathKey(nodePath)] = Leaf{KeyFragment: frag, Value: leaf.Value}.Hash()
	}

	order := make([]pathBranch, 0, len(p.branches))
	for _, b := range p.branches {
		order = append(order, b)
	}
	sort.Slice(order, func(i, j int) bool { return lessNibbles(order[j].path, order[i].path) })

	for _, pb := range order {
		splitPos := append(append([]Nibble(nil), pb.path...), pb.branch.KeyFragment...)
		h, ok := pb.branch.Hash(func(i Nibble) (types.Hash, bool) {
			if pb.branch.Children[i] == nil {
				return types.ZeroHash, false
			}
			childPath := append(append([]Nibble(nil), splitPos...), i)
			v, ok := resolved[pathKey(childPath)]
			return v, ok
		})
		if !ok {
			return types.ZeroHash, ErrInvalidProof
		}
		resolved[pathKey(pb.path)] = h
		if onBranch != nil {
			onBranch(pb.path, h)
		}
	}

	root, ok := resolved[pathKey(nil)]
	if !ok {
		return types.ZeroHash, ErrInvalidProof
	}
	return root, nil
}

// leafFragment recovers a claimed leaf's key fragment: the nibbles from
// its immediate parent branch's split position to the end of its full key.
// The parent branch must be among this proof's recorded branches.
func leafFragment(p *RootPath, key []Nibble) []Nibble {
	var best []Nibble
	bestLen := -1
	for _, b := range p.branches {
		splitPos := append(append([]Nibble(nil), b.path...), b.branch.KeyFragment...)
		if len(splitPos) < len(key) && len(splitPos) > bestLen && equalNibbles(splitPos, key[:len(splitPos)]) {
			bestLen = len(splitPos)
			best = key[len(splitPos)+1:]
		}
	}
	if best == nil {
		return []Nibble{}
	}
	return best
}
