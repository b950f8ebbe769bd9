package smt

import (
	"errors"
	"testing"

	"github.com/hashfold/smtstore/backend"
	"github.com/hashfold/smtstore/common"
	"go.uber.org/mock/gomock"
)

func TestDirectStoreImplements(t *testing.T) {
	var s DirectStore
	var _ NodeStore = &s
}

func TestDirectStoreWriteThenRead(t *testing.T) {
	s := NewDirectStore(backend.NewMemoryStore())

	key := BranchKey{Height: 42, NodeKey: common.Hash{5: 0x60, 20: 0x99}}
	node := BranchNode{Left: PlainMergeValue(hashA), Right: MergeWithZero(hashB, hashC, 77)}

	if _, exists, err := s.GetBranch(key); err != nil || exists {
		t.Fatalf("an unwritten branch must report absence, got exists=%t, err=%v", exists, err)
	}
	if err := s.InsertBranch(key, node); err != nil {
		t.Fatalf("failed to insert branch: %v", err)
	}
	restored, exists, err := s.GetBranch(key)
	if err != nil || !exists {
		t.Fatalf("failed to read back branch: exists=%t, err=%v", exists, err)
	}
	if restored != node {
		t.Errorf("unexpected node: got %+v, wanted %+v", restored, node)
	}
}

func TestDirectStoreRemoveDeletesTheRecord(t *testing.T) {
	s := NewDirectStore(backend.NewMemoryStore())

	key := BranchKey{Height: 0, NodeKey: common.Hash{0: 0xAA}}
	if err := s.InsertBranch(key, BranchNode{Left: PlainMergeValue(hashA)}); err != nil {
		t.Fatalf("failed to insert branch: %v", err)
	}
	if err := s.RemoveBranch(key); err != nil {
		t.Fatalf("failed to remove branch: %v", err)
	}
	// Unlike the packed engine, the direct engine has no record left to
	// answer from after a removal.
	if _, exists, err := s.GetBranch(key); err != nil || exists {
		t.Errorf("a removed branch must report absence, got exists=%t, err=%v", exists, err)
	}
}

func TestDirectStoreCountsOneCallPerOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := backend.NewMockKvStore(ctrl)
	s := NewDirectStore(db)

	key := BranchKey{Height: 7, NodeKey: common.Hash{1: 0x01}}
	node := BranchNode{Right: PlainMergeValue(hashB)}

	db.EXPECT().Get(backend.BranchStoreKey, key.ToBytes()).Return(EncodeBranchNode(node), nil)
	db.EXPECT().Insert(backend.BranchStoreKey, key.ToBytes(), EncodeBranchNode(node)).Return(nil)
	db.EXPECT().Delete(backend.BranchStoreKey, key.ToBytes()).Return(nil)

	if _, _, err := s.GetBranch(key); err != nil {
		t.Fatalf("failed to read branch: %v", err)
	}
	if err := s.InsertBranch(key, node); err != nil {
		t.Fatalf("failed to insert branch: %v", err)
	}
	if err := s.RemoveBranch(key); err != nil {
		t.Fatalf("failed to remove branch: %v", err)
	}
	if stats := s.Stats(); stats.Reads != 1 || stats.Writes != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestDirectStoreRejectsCorruptedBranchRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := backend.NewMockKvStore(ctrl)
	s := NewDirectStore(db)

	key := BranchKey{Height: 7, NodeKey: common.Hash{1: 0x01}}
	for _, data := range [][]byte{{}, make([]byte, BranchNodeSize-1), make([]byte, SubtreeSize)} {
		db.EXPECT().Get(backend.BranchStoreKey, key.ToBytes()).Return(data, nil)
		if _, _, err := s.GetBranch(key); !errors.Is(err, ErrCorruptedNode) {
			t.Errorf("a %d byte branch record must be rejected as corrupted, got %v", len(data), err)
		}
	}
}

func TestDirectStoreRejectsCorruptedLeaf(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := backend.NewMockKvStore(ctrl)
	s := NewDirectStore(db)

	key := common.Hash{0x07}
	db.EXPECT().Get(backend.LeafStoreKey, key[:]).Return(make([]byte, LeafValueSize+1), nil)
	if _, _, err := s.GetLeaf(key); !errors.Is(err, ErrCorruptedLeaf) {
		t.Errorf("an oversized leaf record must be rejected as corrupted, got %v", err)
	}
}

func TestDirectStoreLeafLifecycle(t *testing.T) {
	s := NewDirectStore(backend.NewMemoryStore())

	key := common.Hash{0x10}
	value := common.Hash{0x20}

	if err := s.InsertLeaf(key, value); err != nil {
		t.Fatalf("failed to insert leaf: %v", err)
	}
	if restored, exists, err := s.GetLeaf(key); err != nil || !exists || restored != value {
		t.Errorf("unexpected leaf read: got %v, exists=%t, err=%v", restored, exists, err)
	}
	if err := s.RemoveLeaf(key); err != nil {
		t.Fatalf("failed to remove leaf: %v", err)
	}
	if _, exists, err := s.GetLeaf(key); err != nil || exists {
		t.Errorf("a removed leaf must report absence, got exists=%t, err=%v", exists, err)
	}
}
