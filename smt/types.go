package smt

import (
	"fmt"

	"github.com/hashfold/smtstore/common"
)

// Tree heights count from the leaves: the parents of the leaves sit at height
// 0, the root at height 255. Direction bit i of a 256-bit path is stored at
// path[i/8]>>(i%8)&1, so byte 0 of a path carries the direction bits of the
// deepest eight levels.

// BranchKey identifies one internal node of the tree by its height and the
// path leading to it. All path bits at positions at or below the height are
// zero, as they select positions inside the node's own subtree.
type BranchKey struct {
	Height  uint8
	NodeKey common.Hash
}

// ToBytes encodes the key as one height byte followed by the 32-byte path.
func (k BranchKey) ToBytes() []byte {
	b := make([]byte, 33)
	b[0] = k.Height
	copy(b[1:], k.NodeKey[:])
	return b
}

// Round maps the branch key to the key of the packed subtree it belongs to:
// the height is rounded up to the deepest boundary of its eight-level band
// and the path is truncated to the band root's path. Two branch keys round to
// the same key iff their nodes live in the same packed subtree.
func (k BranchKey) Round() BranchKey {
	rounded := uint8((int(k.Height)/subtreeLevels+1)*subtreeLevels - 1)
	return BranchKey{Height: rounded, NodeKey: ParentPath(k.NodeKey, rounded)}
}

func (k BranchKey) String() string {
	return fmt.Sprintf("%d/%s", k.Height, k.NodeKey)
}

// ParentPath truncates the path to the ancestor at the given height by
// clearing every direction bit at or below it.
func ParentPath(path common.Hash, height uint8) common.Hash {
	if height == 255 {
		return common.Hash{}
	}
	return copyBits(path, int(height)+1)
}

// copyBits keeps the path bits at positions >= start and clears the rest.
func copyBits(path common.Hash, start int) common.Hash {
	var res common.Hash
	first := start / 8
	copy(res[first+1:], path[first+1:])
	res[first] = path[first] & (0xFF << (start % 8))
	return res
}

// MergeValueKind distinguishes the two merge-value variants.
type MergeValueKind byte

const (
	// MergeValuePlain marks a 256-bit value to be hashed directly.
	MergeValuePlain MergeValueKind = 0
	// MergeValueWithZero marks a compact representation of a subtree that is
	// provably all zero below a base node.
	MergeValueWithZero MergeValueKind = 1
)

// MergeValue is the value attached to one child edge of a branch node. For
// the plain kind, Value holds the value itself and ZeroBits and ZeroCount are
// zero. For the merge-with-zero kind, Value holds the base node, ZeroBits the
// zero-bit mask and ZeroCount the number of zero levels.
type MergeValue struct {
	Kind      MergeValueKind
	Value     common.Hash
	ZeroBits  common.Hash
	ZeroCount uint8
}

// PlainMergeValue creates a merge value wrapping a value to be hashed directly.
func PlainMergeValue(value common.Hash) MergeValue {
	return MergeValue{Kind: MergeValuePlain, Value: value}
}

// MergeWithZero creates a merge value compacting a run of zero levels below
// the given base node.
func MergeWithZero(baseNode common.Hash, zeroBits common.Hash, zeroCount uint8) MergeValue {
	return MergeValue{
		Kind:      MergeValueWithZero,
		Value:     baseNode,
		ZeroBits:  zeroBits,
		ZeroCount: zeroCount,
	}
}

// BranchNode is one internal node of the tree, holding the merge values of
// its two children.
type BranchNode struct {
	Left  MergeValue
	Right MergeValue
}
