package smt

import (
	"github.com/hashfold/smtstore/common"
)

const (
	// MergeValueSize is the fixed width of an encoded merge value: a tag
	// byte, a zero-count byte, the 32-byte value or base node, and the
	// 32-byte zero-bit mask. Both variants use the full width so that offset
	// arithmetic inside packed subtrees never depends on the content.
	MergeValueSize = 2 + 32 + 32
	// BranchNodeSize is the fixed width of an encoded branch node.
	BranchNodeSize = 2 * MergeValueSize
	// LeafValueSize is the width of a stored leaf value.
	LeafValueSize = 32
)

const (
	// ErrCorruptedNode is reported when a stored branch-node record has an
	// unexpected length.
	ErrCorruptedNode = common.ConstError("corrupted branch node record")
	// ErrCorruptedSubtree is reported when a stored subtree record has an
	// unexpected length.
	ErrCorruptedSubtree = common.ConstError("corrupted subtree record")
	// ErrCorruptedLeaf is reported when a stored leaf record has an
	// unexpected length.
	ErrCorruptedLeaf = common.ConstError("corrupted leaf record")
)

// encodeMergeValueTo writes the canonical encoding of the merge value into
// dst, which must be at least MergeValueSize bytes long. Unused fields are
// zero-filled, so overwriting a previously used slot leaves no stale bytes.
func encodeMergeValueTo(dst []byte, v MergeValue) {
	if v.Kind == MergeValueWithZero {
		dst[0] = byte(MergeValueWithZero)
		dst[1] = v.ZeroCount
		copy(dst[2:34], v.Value[:])
		copy(dst[34:66], v.ZeroBits[:])
		return
	}
	dst[0] = byte(MergeValuePlain)
	dst[1] = 0
	copy(dst[2:34], v.Value[:])
	for i := 34; i < MergeValueSize; i++ {
		dst[i] = 0
	}
}

// decodeMergeValueFrom reads a merge value from src, which must be at least
// MergeValueSize bytes long. Any tag byte other than the merge-with-zero tag
// decodes as a plain value.
func decodeMergeValueFrom(src []byte) MergeValue {
	serializer := common.HashSerializer{}
	if src[0] == byte(MergeValueWithZero) {
		return MergeWithZero(serializer.FromBytes(src[2:34]), serializer.FromBytes(src[34:66]), src[1])
	}
	return PlainMergeValue(serializer.FromBytes(src[2:34]))
}

// EncodeMergeValue returns the fixed-width encoding of the merge value.
func EncodeMergeValue(v MergeValue) []byte {
	data := make([]byte, MergeValueSize)
	encodeMergeValueTo(data, v)
	return data
}

// DecodeMergeValue decodes a merge value, rejecting input of any length other
// than MergeValueSize.
func DecodeMergeValue(data []byte) (MergeValue, error) {
	if len(data) != MergeValueSize {
		return MergeValue{}, ErrCorruptedNode
	}
	return decodeMergeValueFrom(data), nil
}

// EncodeBranchNode returns the fixed-width encoding of the branch node: the
// left merge value immediately followed by the right one.
func EncodeBranchNode(n BranchNode) []byte {
	data := make([]byte, BranchNodeSize)
	encodeMergeValueTo(data[:MergeValueSize], n.Left)
	encodeMergeValueTo(data[MergeValueSize:], n.Right)
	return data
}

// DecodeBranchNode decodes a branch node, rejecting input of any length other
// than BranchNodeSize.
func DecodeBranchNode(data []byte) (BranchNode, error) {
	if len(data) != BranchNodeSize {
		return BranchNode{}, ErrCorruptedNode
	}
	return BranchNode{
		Left:  decodeMergeValueFrom(data[:MergeValueSize]),
		Right: decodeMergeValueFrom(data[MergeValueSize:]),
	}, nil
}
