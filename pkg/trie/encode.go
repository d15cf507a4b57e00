package trie

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidNode is returned when a stored node's encoding is malformed.
// This is one of the proof-layer sentinel errors from spec.md §7.
var ErrInvalidNode = errors.New("trie: invalid node encoding")

// encodeNode serializes a Node for storage. There is no ecosystem codec
// (RLP is shaped around go-ethereum's extension/full node topology, which
// this trie does not have) so this uses a small length-prefixed stdlib
// encoding.
func encodeNode(n Node) []byte {
	var buf []byte
	switch v := n.(type) {
	case Leaf:
		buf = append(buf, 0)
		buf = appendNibbleField(buf, v.KeyFragment)
		buf = appendBytesField(buf, v.Value)
	case Branch:
		buf = append(buf, 1)
		buf = appendNibbleField(buf, v.KeyFragment)
		for i := 0; i < 16; i++ {
			if v.Children[i] == nil {
				buf = append(buf, 0)
				continue
			}
			buf = append(buf, 1)
			buf = appendNibbleField(buf, v.Children[i])
		}
	}
	return buf
}

func decodeNode(raw []byte) (Node, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidNode
	}
	tag := raw[0]
	rest := raw[1:]

	frag, rest, err := readNibbleField(rest)
	if err != nil {
		return nil, err
	}

	switch tag {
	case 0:
		value, _, err := readBytesField(rest)
		if err != nil {
			return nil, err
		}
		return Leaf{KeyFragment: frag, Value: value}, nil
	case 1:
		var b Branch
		b.KeyFragment = frag
		for i := 0; i < 16; i++ {
			if len(rest) == 0 {
				return nil, ErrInvalidNode
			}
			present := rest[0]
			rest = rest[1:]
			if present == 0 {
				continue
			}
			childFrag, next, err := readNibbleField(rest)
			if err != nil {
				return nil, err
			}
			b.Children[i] = childFrag
			rest = next
		}
		return b, nil
	default:
		return nil, ErrInvalidNode
	}
}

func appendNibbleField(buf []byte, nibbles []Nibble) []byte {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(nibbles)))
	buf = append(buf, lenBuf[:n]...)
	return append(buf, nibbles...)
}

func readNibbleField(buf []byte) ([]Nibble, []byte, error) {
	l, n := binary.Uvarint(buf)
	if n <= 0 {
		return nil, nil, ErrInvalidNode
	}
	buf = buf[n:]
	if uint64(len(buf)) < l {
		return nil, nil, ErrInvalidNode
	}
	out := append([]Nibble(nil), buf[:l]...)
	return out, buf[l:], nil
}

func appendBytesField(buf, value []byte) []byte {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(value)))
	buf = append(buf, lenBuf[:n]...)
	return append(buf, value...)
}

func readBytesField(buf []byte) ([]byte, []byte, error) {
	l, n := binary.Uvarint(buf)
	if n <= 0 {
		return nil, nil, ErrInvalidNode
	}
	buf = buf[n:]
	if uint64(len(buf)) < l {
		return nil, nil, ErrInvalidNode
	}
	out := append([]byte(nil), buf[:l]...)
	return out, buf[l:], nil
}
