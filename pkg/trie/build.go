package trie

import (
	"sort"

	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// Entry is a raw (nibble-key, value) pair used to build a trie from
// scratch.
type Entry struct {
	Key   []Nibble
	Value []byte
}

// Build constructs a full nibble Patricia trie from entries, storing every
// node and node hash it creates into store keyed by full path from the
// root (the root itself is stored at the empty path). It returns the
// root's hash, or ZeroHash with a nil error if entries is empty.
//
// The reference implementation's equivalent builder never actually
// inserted the nodes it built into its result map; this is a from-scratch
// top-down construction rather than a port of that code.
func Build(store NodeStore, entries []Entry) (types.Hash, error) {
	if len(entries) == 0 {
		return types.ZeroHash, nil
	}
	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return lessNibbles(sorted[i].Key, sorted[j].Key) })

	_, h, _, err := build(store, nil, sorted)
	return h, err
}

// build constructs the subtree rooted at path, covering entries (all of
// which share path as a key prefix), stores the resulting node at path,
// and returns it along with its hash.
func build(store NodeStore, path []Nibble, entries []Entry) (Node, types.Hash, bool, error) {
	if len(entries) == 1 {
		frag := entries[0].Key[len(path):]
		leaf := Leaf{KeyFragment: frag, Value: entries[0].Value}
		if err := store.PutNode(path, leaf); err != nil {
			return nil, types.ZeroHash, false, err
		}
		h := leaf.Hash()
		if err := store.PutNodeHash(path, h); err != nil {
			return nil, types.ZeroHash, false, err
		}
		return leaf, h, true, nil
	}

	common := longestCommonSuffix(path, entries)
	splitPos := append(append([]Nibble(nil), path...), common...)

	groups := make(map[Nibble][]Entry)
	order := make([]Nibble, 0, 16)
	for _, e := range entries {
		idx := e.Key[len(splitPos)]
		if _, seen := groups[idx]; !seen {
			order = append(order, idx)
		}
		groups[idx] = append(groups[idx], e)
	}

	var branch Branch
	branch.KeyFragment = common
	childHash := make(map[Nibble]types.Hash)

	for _, idx := range order {
		childPath := append(append([]Nibble(nil), splitPos...), idx)
		childNode, h, ok, err := build(store, childPath, groups[idx])
		if err != nil {
			return nil, types.ZeroHash, false, err
		}
		if !ok {
			continue
		}
		childHash[idx] = h
		switch n := childNode.(type) {
		case Leaf:
			branch.Children[idx] = orEmpty(n.KeyFragment)
		case Branch:
			branch.Children[idx] = orEmpty(n.KeyFragment)
		}
	}

	if err := store.PutNode(path, branch); err != nil {
		return nil, types.ZeroHash, false, err
	}
	h, ok := branch.Hash(func(i Nibble) (types.Hash, bool) {
		v, present := childHash[i]
		return v, present
	})
	if ok {
		if err := store.PutNodeHash(path, h); err != nil {
			return nil, types.ZeroHash, false, err
		}
	}
	return branch, h, ok, nil
}

// orEmpty distinguishes a present-but-zero-length fragment from a nil
// (absent-child) sentinel: Children[i] == nil means "no child", so a
// genuinely empty fragment must be a non-nil empty slice.
func orEmpty(frag []Nibble) []Nibble {
	if frag == nil {
		return []Nibble{}
	}
	return frag
}

// longestCommonSuffix returns the longest nibble sequence, starting right
// after path, shared by every entry's key. Since entries contains at least
// two distinct keys it is always shorter than the shortest remaining
// suffix, leaving at least one nibble to split the branch on.
func longestCommonSuffix(path []Nibble, entries []Entry) []Nibble {
	first := entries[0].Key[len(path):]
	lcp := len(first)
	for _, e := range entries[1:] {
		suf := e.Key[len(path):]
		n := 0
		for n < lcp && n < len(suf) && first[n] == suf[n] {
			n++
		}
		lcp = n
	}
	return append([]Nibble(nil), first[:lcp]...)
}
