package smt

const (
	// subtreeLevels is the number of tree levels packed into one subtree,
	// one path byte worth of direction bits.
	subtreeLevels = 8
	// NodesPerSubtree is the number of branch-node slots in one packed
	// subtree, a complete binary tree of subtreeLevels levels.
	NodesPerSubtree = 1<<subtreeLevels - 1
	// SubtreeSize is the fixed byte length of a packed subtree record.
	SubtreeSize = NodesPerSubtree * BranchNodeSize
)

// subtree is the in-memory image of one packed subtree record. All branch
// nodes whose keys round to the same root live in its data buffer, including
// slots that were never written, which decode to pairs of zero plain values.
type subtree struct {
	data []byte    // always SubtreeSize bytes
	root BranchKey // the rounded key the record is stored under
}

// newSubtree creates the all-zero image of a subtree that has not been
// stored yet.
func newSubtree(root BranchKey) *subtree {
	return &subtree{
		data: make([]byte, SubtreeSize),
		root: root,
	}
}

// subtreeFromBytes interprets a stored record as a subtree image, rejecting
// records of any length other than SubtreeSize.
func subtreeFromBytes(root BranchKey, data []byte) (*subtree, error) {
	if len(data) != SubtreeSize {
		return nil, ErrCorruptedSubtree
	}
	return &subtree{data: data, root: root}, nil
}

// slotIndex computes the breadth-first position of a branch node inside the
// subtree. The levels of the subtree are stored root first: the node at inner
// height h (the branch key's height modulo subtreeLevels, with the subtree
// root at inner height 7) occupies one of 2^(7-h) slots starting at offset
// 2^(7-h)-1, and the slot within the level is selected by the path bits above
// the inner height within the subtree's direction byte. The arithmetic is a
// bijection between the valid (height, direction bits) pairs of the band and
// the slot range [0, NodesPerSubtree).
func (s *subtree) slotIndex(key BranchKey) int {
	directionByte := key.NodeKey[int(s.root.Height)/subtreeLevels]
	innerHeight := int(key.Height) % subtreeLevels
	base := 1<<(subtreeLevels-innerHeight-1) - 1
	return base + int(directionByte>>(innerHeight+1))
}

// getBranch decodes the branch node stored in the key's slot. Slots that were
// never written decode to a node of two zero plain values.
func (s *subtree) getBranch(key BranchKey) BranchNode {
	offset := s.slotIndex(key) * BranchNodeSize
	return BranchNode{
		Left:  decodeMergeValueFrom(s.data[offset:]),
		Right: decodeMergeValueFrom(s.data[offset+MergeValueSize:]),
	}
}

// setBranch overwrites the key's slot with the encoding of the given node.
func (s *subtree) setBranch(key BranchKey, node BranchNode) {
	offset := s.slotIndex(key) * BranchNodeSize
	encodeMergeValueTo(s.data[offset:offset+MergeValueSize], node.Left)
	encodeMergeValueTo(s.data[offset+MergeValueSize:offset+BranchNodeSize], node.Right)
}

// clearBranch zero-fills the key's slot, restoring its never-written state.
func (s *subtree) clearBranch(key BranchKey) {
	offset := s.slotIndex(key) * BranchNodeSize
	for i := offset; i < offset+BranchNodeSize; i++ {
		s.data[i] = 0
	}
}
