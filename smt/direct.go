package smt

import (
	"fmt"

	"github.com/hashfold/smtstore/backend"
	"github.com/hashfold/smtstore/common"
)

// DirectStore is a NodeStore keeping one record per branch node, keyed by the
// node's height and path. It is the baseline the packed engine is measured
// against: correct and simple, but every tree update touches as many records
// as there are levels on the update path.
type DirectStore struct {
	store backend.KvStore
	stats AccessStats
}

func NewDirectStore(store backend.KvStore) *DirectStore {
	return &DirectStore{store: store}
}

func (s *DirectStore) GetBranch(key BranchKey) (BranchNode, bool, error) {
	s.stats.Reads++
	data, err := s.store.Get(backend.BranchStoreKey, key.ToBytes())
	if err == backend.ErrNotFound {
		return BranchNode{}, false, nil
	}
	if err != nil {
		return BranchNode{}, false, fmt.Errorf("failed to load branch %v: %w", key, err)
	}
	node, err := DecodeBranchNode(data)
	if err != nil {
		return BranchNode{}, false, err
	}
	return node, true, nil
}

func (s *DirectStore) InsertBranch(key BranchKey, node BranchNode) error {
	s.stats.Writes++
	if err := s.store.Insert(backend.BranchStoreKey, key.ToBytes(), EncodeBranchNode(node)); err != nil {
		return fmt.Errorf("failed to store branch %v: %w", key, err)
	}
	return nil
}

func (s *DirectStore) RemoveBranch(key BranchKey) error {
	s.stats.Writes++
	if err := s.store.Delete(backend.BranchStoreKey, key.ToBytes()); err != nil {
		return fmt.Errorf("failed to remove branch %v: %w", key, err)
	}
	return nil
}

func (s *DirectStore) GetLeaf(key common.Hash) (common.Hash, bool, error) {
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

func (s *DirectStore) InsertLeaf(key common.Hash, value common.Hash) error {
	s.stats.Writes++
	if err := s.store.Insert(backend.LeafStoreKey, key[:], common.HashSerializer{}.ToBytes(value)); err != nil {
		return fmt.Errorf("failed to store leaf %v: %w", key, err)
	}
	return nil
}

func (s *DirectStore) RemoveLeaf(key common.Hash) error {
	s.stats.Writes++
	if err := s.store.Delete(backend.LeafStoreKey, key[:]); err != nil {
		return fmt.Errorf("failed to remove leaf %v: %w", key, err)
	}
	return nil
}

func (s *DirectStore) Stats() AccessStats {
	return s.stats
}

func (s *DirectStore) ResetStats() {
	s.stats = AccessStats{}
}
