package trie

import (
	"sync"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/golang/snappy"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/kv"
	"github.com/sunriselayer/interliquid-sdk-sub000/pkg/types"
)

// NodeStore persists trie nodes and their hashes, keyed by the node's full
// path (the nibble sequence consumed to reach it from the root). It is the
// get_node/get_node_hash collaborator of spec.md §4.4.
type NodeStore interface {
	GetNode(path []Nibble) (Node, bool, error)
	PutNode(path []Nibble, n Node) error
	GetNodeHash(path []Nibble) (types.Hash, bool, error)
	PutNodeHash(path []Nibble, h types.Hash) error
}

// MemoryNodeStore is an in-memory NodeStore, used for tests.
type MemoryNodeStore struct {
	mu     sync.RWMutex
	nodes  map[string]Node
	hashes map[string]types.Hash
}

// NewMemoryNodeStore returns an empty MemoryNodeStore.
func NewMemoryNodeStore() *MemoryNodeStore {
	return &MemoryNodeStore{nodes: make(map[string]Node), hashes: make(map[string]types.Hash)}
}

func (s *MemoryNodeStore) GetNode(path []Nibble) (Node, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[string(NibblesAsBytes(path))]
	return n, ok, nil
}

func (s *MemoryNodeStore) PutNode(path []Nibble, n Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[string(NibblesAsBytes(path))] = n
	return nil
}

func (s *MemoryNodeStore) GetNodeHash(path []Nibble) (types.Hash, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hashes[string(NibblesAsBytes(path))]
	return h, ok, nil
}

func (s *MemoryNodeStore) PutNodeHash(path []Nibble, h types.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[string(NibblesAsBytes(path))] = h
	return nil
}

// Database is a disk-backed NodeStore fronted by a fastcache hot-node
// cache, adapted from the teacher's NodeDatabase: nodes are written
// through to the cache and to backing on every Put, and reads consult the
// cache before falling through to backing. Node bodies and node hashes are
// kept in separate namespaces of the same backing store. Node bodies are
// snappy-compressed on their way to backing; the cache holds the
// uncompressed encoding so hot reads never pay the decompression cost.
type Database struct {
	nodeKV kv.Store
	hashKV kv.Store
	cache  *fastcache.Cache
}

// NewDatabase wraps backing with a fastcache of approximately cacheBytes.
func NewDatabase(backing kv.Store, cacheBytes int) *Database {
	return &Database{
		nodeKV: kv.NewNamespaced(backing, "trie/node/"),
		hashKV: kv.NewNamespaced(backing, "trie/hash/"),
		cache:  fastcache.New(cacheBytes),
	}
}

func (d *Database) GetNode(path []Nibble) (Node, bool, error) {
	key := NibblesAsBytes(path)
	if raw, ok := d.cache.HasGet(nil, key); ok {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, false, err
		}
		return n, true, nil
	}
	compressed, err := d.nodeKV.Get(key)
	if err != nil {
		return nil, false, err
	}
	if compressed == nil {
		return nil, false, nil
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, false, err
	}
	d.cache.Set(key, raw)
	n, err := decodeNode(raw)
	if err != nil {
		return nil, false, err
	}
	return n, true, nil
}

func (d *Database) PutNode(path []Nibble, n Node) error {
	key := NibblesAsBytes(path)
	raw := encodeNode(n)
	d.cache.Set(key, raw)
	return d.nodeKV.Set(key, snappy.Encode(nil, raw))
}

func (d *Database) GetNodeHash(path []Nibble) (types.Hash, bool, error) {
	raw, err := d.hashKV.Get(NibblesAsBytes(path))
	if err != nil {
		return types.ZeroHash, false, err
	}
	if raw == nil {
		return types.ZeroHash, false, nil
	}
	var h types.Hash
	copy(h[:], raw)
	return h, true, nil
}

func (d *Database) PutNodeHash(path []Nibble, h types.Hash) error {
	return d.hashKV.Set(NibblesAsBytes(path), h[:])
}
