package smt

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/hashfold/smtstore/backend"
	"github.com/hashfold/smtstore/common"
	"golang.org/x/exp/maps"
)

// BatchedPackedStore is a PackedStore variant that buffers subtree mutations
// in memory and writes each dirty subtree record once, on Flush. Many branch
// updates falling into the same eight-level band then collapse into a single
// underlying write, which is where the packed layout pays off for batched
// tree updates.
//
// The buffer grows with the number of distinct subtrees touched and is
// dropped on Flush; callers are expected to flush before committing the
// enclosing transaction and to use one instance per transaction.
type BatchedPackedStore struct {
	store    backend.KvStore
	subtrees map[BranchKey]*subtree // loaded images by rounded key, nil = known absent
	dirty    map[BranchKey]struct{}
	stats    AccessStats
}

func NewBatchedPackedStore(store backend.KvStore) *BatchedPackedStore {
	return &BatchedPackedStore{
		store:    store,
		subtrees: map[BranchKey]*subtree{},
		dirty:    map[BranchKey]struct{}{},
	}
}

// fetchSubtree returns the buffered image of the subtree, loading it from the
// underlying store on first access. Absence is memoized, so repeated reads of
// a missing subtree cost one underlying read in total.
func (s *BatchedPackedStore) fetchSubtree(rounded BranchKey) (*subtree, error) {
	if st, ok := s.subtrees[rounded]; ok {
		return st, nil
	}
	s.stats.Reads++
	data, err := s.store.Get(backend.BranchStoreKey, rounded.ToBytes())
	if err == backend.ErrNotFound {
		s.subtrees[rounded] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subtree %v: %w", rounded, err)
	}
	st, err := subtreeFromBytes(rounded, data)
	if err != nil {
		return nil, err
	}
	s.subtrees[rounded] = st
	return st, nil
}

// mutableSubtree returns the buffered image of the subtree, creating an empty
// image if the subtree was never written.
func (s *BatchedPackedStore) mutableSubtree(rounded BranchKey) (*subtree, error) {
	st, err := s.fetchSubtree(rounded)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = newSubtree(rounded)
		s.subtrees[rounded] = st
	}
	return st, nil
}

func (s *BatchedPackedStore) GetBranch(key BranchKey) (BranchNode, bool, error) {
	st, err := s.fetchSubtree(key.Round())
	if err != nil {
		return BranchNode{}, false, err
	}
	if st == nil {
		return BranchNode{}, false, nil
	}
	return st.getBranch(key), true, nil
}

func (s *BatchedPackedStore) InsertBranch(key BranchKey, node BranchNode) error {
	rounded := key.Round()
	st, err := s.mutableSubtree(rounded)
	if err != nil {
		return err
	}
	st.setBranch(key, node)
	s.dirty[rounded] = struct{}{}
	return nil
}

func (s *BatchedPackedStore) RemoveBranch(key BranchKey) error {
	rounded := key.Round()
	st, err := s.mutableSubtree(rounded)
	if err != nil {
		return err
	}
	st.clearBranch(key)
	s.dirty[rounded] = struct{}{}
	return nil
}

// Flush writes every dirty subtree record back to the underlying store, one
// write per record, and drops the buffer. The write order is deterministic.
func (s *BatchedPackedStore) Flush() error {
	keys := maps.Keys(s.dirty)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Height != keys[j].Height {
			return keys[i].Height < keys[j].Height
		}
		return bytes.Compare(keys[i].NodeKey[:], keys[j].NodeKey[:]) < 0
	})
	for _, rounded := range keys {
		st := s.subtrees[rounded]
		s.stats.Writes++
		if err := s.store.Insert(backend.BranchStoreKey, rounded.ToBytes(), st.data); err != nil {
			return fmt.Errorf("failed to store subtree %v: %w", rounded, err)
		}
	}
	s.subtrees = map[BranchKey]*subtree{}
	s.dirty = map[BranchKey]struct{}{}
	return nil
}

func (s *BatchedPackedStore) GetLeaf(key common.Hash) (common.Hash, bool, error) {
	s.stats.Reads++
	data, err := s.store.Get(backend.LeafStoreKey, key[:])
	if err == backend.ErrNotFound {
		return common.Hash{}, false, nil
	}
	if err != nil {
		return common.Hash{}, false, fmt.Errorf("failed to load leaf %v: %w", key, err)
	}
	if len(data) != LeafValueSize {
		return common.Hash{}, false, ErrCorruptedLeaf
	}
	return common.HashSerializer{}.FromBytes(data), true, nil
}

func (s *BatchedPackedStore) InsertLeaf(key common.Hash, value common.Hash) error {
	s.stats.Writes++
	if err := s.store.Insert(backend.LeafStoreKey, key[:], common.HashSerializer{}.ToBytes(value)); err != nil {
		return fmt.Errorf("failed to store leaf %v: %w", key, err)
	}
	return nil
}

func (s *BatchedPackedStore) RemoveLeaf(key common.Hash) error {
	s.stats.Writes++
	if err := s.store.Delete(backend.LeafStoreKey, key[:]); err != nil {
		return fmt.Errorf("failed to remove leaf %v: %w", key, err)
	}
	return nil
}

func (s *BatchedPackedStore) Stats() AccessStats {
	return s.stats
}

func (s *BatchedPackedStore) ResetStats() {
	s.stats = AccessStats{}
}
