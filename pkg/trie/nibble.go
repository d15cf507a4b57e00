// Package trie implements the nibble-keyed Patricia trie of spec.md §4.4:
// a Leaf/Branch node shape (no separate extension nodes), canonical hash
// definitions over those nodes, and the root-path proof machinery used
// both for single-key inclusion/non-inclusion proofs and for full range
// completeness proofs. The same mechanics back both the sparse value tree
// (commitment.StateTree) and the keys-presence trie (commitment.KeysTrie).
package trie

// Nibble is a single 4-bit value in [0, 16).
type Nibble = byte

// BytesToNibbles expands a byte slice into its big-endian nibble sequence,
// most significant nibble of each byte first.
func BytesToNibbles(b []byte) []Nibble {
	out := make([]Nibble, 0, len(b)*2)
	for _, c := range b {
		out = append(out, c>>4, c&0x0f)
	}
	return out
}

// NibblesToBytes packs an even-length nibble sequence back into bytes. It
// panics on an odd-length input: a raw trie key is always a whole number
// of bytes, so only key fragments (handled via NibblesAsBytes) may have
// odd length.
func NibblesToBytes(nibbles []Nibble) []byte {
	if len(nibbles)%2 != 0 {
		panic("trie: odd-length nibble sequence cannot pack to bytes")
	}
	out := make([]byte, len(nibbles)/2)
	for i := 0; i < len(out); i++ {
		out[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
	}
	return out
}

// NibblesAsBytes canonically, invertibly encodes a nibble sequence of any
// length (including odd) into bytes, for hashing and for use as a NodeStore
// key. It follows the hex-prefix convention the teacher's trie package
// uses for partial paths: the first byte's high nibble is a parity flag (1
// if the sequence has odd length), its low nibble carries the sequence's
// first nibble when the flag is set, and every following pair of nibbles
// packs into one byte.
func NibblesAsBytes(nibbles []Nibble) []byte {
	odd := len(nibbles)%2 == 1
	out := make([]byte, 0, len(nibbles)/2+1)
	i := 0
	var flag byte
	if odd {
		flag = 1<<4 | nibbles[0]
		i = 1
	}
	out = append(out, flag)
	for i+1 < len(nibbles) {
		out = append(out, nibbles[i]<<4|nibbles[i+1])
		i += 2
	}
	return out
}

// BytesAsNibbles reverses NibblesAsBytes.
func BytesAsNibbles(b []byte) []Nibble {
	if len(b) == 0 {
		return nil
	}
	flag := b[0]
	odd := flag&0xf0 != 0
	out := make([]Nibble, 0, (len(b)-1)*2+1)
	if odd {
		out = append(out, flag&0x0f)
	}
	for _, c := range b[1:] {
		out = append(out, c>>4, c&0x0f)
	}
	return out
}

// equalNibbles reports whether a and b contain the same nibbles.
func equalNibbles(a, b []Nibble) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lessNibbles orders nibble sequences the same way BTreeMap<Vec<Nibble>, _>
// orders them in the reference implementation: lexicographically, with a
// shorter sequence ordering before a longer one that extends it.
func lessNibbles(a, b []Nibble) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
