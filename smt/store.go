package smt

import (
	"fmt"

	"github.com/hashfold/smtstore/common"
)

// NodeStore is the storage contract the sparse Merkle tree algorithm builds
// on. It persists branch nodes and leaf values without deciding what to
// store; root computation, proof generation and node merging stay with the
// tree layer.
//
// Reads of locations that were never written report absence through the
// exists flag rather than an error. Stored records of unexpected length are
// reported as corruption errors and never silently defaulted. Implementations
// are synchronous and not safe for concurrent use; callers scope them to a
// transaction of the underlying store where isolation is needed.
type NodeStore interface {
	// GetBranch returns the branch node stored under the key. For the packed
	// engine, a key whose subtree record exists always yields a node, even if
	// the individual slot was never written.
	GetBranch(key BranchKey) (node BranchNode, exists bool, err error)

	// InsertBranch stores the branch node under the key, overwriting any
	// previous node.
	InsertBranch(key BranchKey, node BranchNode) error

	// RemoveBranch removes the branch node stored under the key. Removing an
	// absent node is not an error.
	RemoveBranch(key BranchKey) error

	// GetLeaf returns the value stored for the leaf key.
	GetLeaf(key common.Hash) (value common.Hash, exists bool, err error)

	// InsertLeaf stores the value under the leaf key.
	InsertLeaf(key common.Hash, value common.Hash) error

	// RemoveLeaf removes the value stored under the leaf key.
	RemoveLeaf(key common.Hash) error

	// Stats returns the accumulated underlying-store access counts. It is
	// diagnostic only and carries no correctness obligation.
	Stats() AccessStats

	// ResetStats resets the access counters to zero.
	ResetStats()
}

// AccessStats counts the primitive operations a node store issued against the
// underlying key-value layer. The counters are not synchronized; a store must
// not be shared across goroutines.
type AccessStats struct {
	Reads  uint64
	Writes uint64
}

func (s AccessStats) String() string {
	return fmt.Sprintf("reads: %d, writes: %d", s.Reads, s.Writes)
}
