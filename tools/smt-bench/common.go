package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"

	"github.com/hashfold/smtstore/common"
	"github.com/hashfold/smtstore/smt"
	"golang.org/x/crypto/blake2b"
)

// applyUpdates simulates the tree layer's work for a batch of random leaf
// updates: each update stores a leaf value and refreshes the branch nodes of
// the lowest levels of the leaf's path, merging upwards with Blake2b.
func applyUpdates(store smt.NodeStore, rnd *rand.Rand, updates int, levels int) error {
	for i := 0; i < updates; i++ {
		key := randomHash(rnd)
		value := randomHash(rnd)
		if err := store.InsertLeaf(key, value); err != nil {
			return fmt.Errorf("failed to insert leaf %v: %w", key, err)
		}
		current := value
		for height := 0; height < levels; height++ {
			branchKey := smt.BranchKey{Height: uint8(height), NodeKey: smt.ParentPath(key, uint8(height))}
			node, _, err := store.GetBranch(branchKey)
			if err != nil {
				return fmt.Errorf("failed to read branch %v: %w", branchKey, err)
			}
			if key[height/8]>>(height%8)&1 == 1 {
				node.Right = smt.PlainMergeValue(current)
			} else {
				node.Left = smt.PlainMergeValue(current)
			}
			if err := store.InsertBranch(branchKey, node); err != nil {
				return fmt.Errorf("failed to insert branch %v: %w", branchKey, err)
			}
			current = common.Hash(blake2b.Sum256(smt.EncodeBranchNode(node)))
		}
	}
	return nil
}

func randomHash(rnd *rand.Rand) common.Hash {
	var h common.Hash
	rnd.Read(h[:])
	return h
}

var cpuProfileFile *os.File

func startCPUProfile(profileName string) error {
	f, err := os.Create(profileName)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %s", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("could not start CPU profile: %s", err)
	}
	cpuProfileFile = f
	return nil
}

func stopCPUProfile() {
	pprof.StopCPUProfile()
	if cpuProfileFile != nil {
		_ = cpuProfileFile.Close()
		cpuProfileFile = nil
	}
}
