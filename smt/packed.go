package smt

import (
	"fmt"

	"github.com/hashfold/smtstore/backend"
	"github.com/hashfold/smtstore/common"
)

// PackedStore is a NodeStore keeping branch nodes in packed subtree records.
// Each operation rounds the branch key to its subtree, fetches the one record
// stored under the rounded key, and locates the node inside it by index
// arithmetic, so the cost of an operation is one underlying read plus, for
// mutations, one full-record write, regardless of how many nodes of the
// subtree are populated.
type PackedStore struct {
	store backend.KvStore
	stats AccessStats
}

func NewPackedStore(store backend.KvStore) *PackedStore {
	return &PackedStore{store: store}
}

// fetchSubtree loads the subtree record stored under the rounded key,
// counting one read. It returns nil if the subtree was never written.
func (s *PackedStore) fetchSubtree(rounded BranchKey) (*subtree, error) {
	s.stats.Reads++
	data, err := s.store.Get(backend.BranchStoreKey, rounded.ToBytes())
	if err == backend.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subtree %v: %w", rounded, err)
	}
	return subtreeFromBytes(rounded, data)
}

// storeSubtree writes the full subtree record back under its rounded key,
// counting one write.
func (s *PackedStore) storeSubtree(st *subtree) error {
	s.stats.Writes++
	if err := s.store.Insert(backend.BranchStoreKey, st.root.ToBytes(), st.data); err != nil {
		return fmt.Errorf("failed to store subtree %v: %w", st.root, err)
	}
	return nil
}

func (s *PackedStore) GetBranch(key BranchKey) (BranchNode, bool, error) {
	st, err := s.fetchSubtree(key.Round())
	if err != nil {
		return BranchNode{}, false, err
	}
	if st == nil {
		return BranchNode{}, false, nil
	}
	return st.getBranch(key), true, nil
}

func (s *PackedStore) InsertBranch(key BranchKey, node BranchNode) error {
	rounded := key.Round()
	st, err := s.fetchSubtree(rounded)
	if err != nil {
		return err
	}
	if st == nil {
		st = newSubtree(rounded)
	}
	st.setBranch(key, node)
	return s.storeSubtree(st)
}

func (s *PackedStore) RemoveBranch(key BranchKey) error {
	rounded := key.Round()
	st, err := s.fetchSubtree(rounded)
	if err != nil {
		return err
	}
	if st == nil {
		st = newSubtree(rounded)
	}
	st.clearBranch(key)
	// The record is always rewritten, even when the last populated slot is
	// cleared. Deleting a fully empty record would reclaim storage, but the
	// emptiness scan is left as an extension point; always rewriting keeps
	// sibling slots of the band safe under the enclosing transaction.
	return s.storeSubtree(st)
}

func (s *PackedStore) GetLeaf(key common.Hash) (common.Hash, bool, error) {
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

func (s *PackedStore) InsertLeaf(key common.Hash, value common.Hash) error {
	s.stats.Writes++
	if err := s.store.Insert(backend.LeafStoreKey, key[:], common.HashSerializer{}.ToBytes(value)); err != nil {
		return fmt.Errorf("failed to store leaf %v: %w", key, err)
	}
	return nil
}

func (s *PackedStore) RemoveLeaf(key common.Hash) error {
	s.stats.Writes++
	if err := s.store.Delete(backend.LeafStoreKey, key[:]); err != nil {
		return fmt.Errorf("failed to remove leaf %v: %w", key, err)
	}
	return nil
}

func (s *PackedStore) Stats() AccessStats {
	return s.stats
}

func (s *PackedStore) ResetStats() {
	s.stats = AccessStats{}
}
