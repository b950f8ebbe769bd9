// Package smt provides the storage layer a sparse Merkle tree builds on. It
// persists the tree's internal branch nodes and leaf values in an underlying
// key-value store, exposed through the NodeStore interface.
//
// Three engines implement the interface. The DirectStore keeps one record per
// branch node, so every update path touches as many records as the tree has
// levels. The PackedStore instead partitions the key space into subtrees of
// eight levels each and serializes all 255 branch nodes of one subtree into a
// single fixed-size blob, stored under the key of the subtree's root. Any
// branch node inside the subtree is then located by closed-form index
// arithmetic, so fetching or updating it costs at most one read and one write
// of the underlying store. The BatchedPackedStore buffers subtree mutations
// and writes each dirty blob once on Flush, collapsing the writes of a whole
// batch of updates into one write per touched subtree.
//
// The byte layout of a packed blob is fixed: 255 consecutive slots of 132
// bytes, one per branch node, ordered breadth-first with the subtree's root
// node in slot 0. Each slot holds two 66-byte merge values (left child, then
// right child), each encoded as a tag byte (0 plain value, 1 merge with
// zero), a zero-count byte, the 32-byte value or base node, and the 32-byte
// zero-bit mask. A stored blob of any other length than 33660 bytes is
// rejected as corrupted.
//
// Both engines count the reads and writes they issue against the underlying
// store, which makes their amplification directly comparable. The engines are
// synchronous and perform no locking of their own; isolation of concurrent
// writers is delegated to the transaction the underlying store is scoped to.
// In particular, two writers updating different nodes of the same packed
// subtree without such isolation lose one of the two updates, as the whole
// blob is rewritten as a unit.
package smt
