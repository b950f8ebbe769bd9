package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hashfold/smtstore/backend"
	"github.com/hashfold/smtstore/common"
	"github.com/hashfold/smtstore/smt"
	"github.com/urfave/cli/v2"
)

// Run with `go run ./tools/smt-bench`

var (
	engineFlag = &cli.StringFlag{
		Name:  "engine",
		Usage: "storage engine to benchmark: packed, direct or batched",
		Value: "batched",
	}
	dirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "directory for the LevelDB instance, a temporary one if empty",
	}
	memoryFlag = &cli.BoolFlag{
		Name:  "memory",
		Usage: "run against an in-memory store instead of LevelDB",
	}
	initFlag = &cli.IntFlag{
		Name:  "init",
		Usage: "number of leaf updates seeding the tree",
		Value: 200,
	}
	roundsFlag = &cli.IntFlag{
		Name:  "rounds",
		Usage: "number of measured rounds",
		Value: 100,
	}
	updatesFlag = &cli.IntFlag{
		Name:  "updates",
		Usage: "number of leaf updates per round",
		Value: 1000,
	}
	levelsFlag = &cli.IntFlag{
		Name:  "levels",
		Usage: "number of tree levels materialized per leaf update",
		Value: 32,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the random key stream",
		Value: 0,
	}
	cpuProfileFlag = &cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "write a CPU profile to the given file",
	}
)

func main() {
	app := &cli.App{
		Name:     "smt-bench",
		HelpName: "smt-bench",
		Usage:    "Measures read/write amplification of the SMT storage engines",
		Flags: []cli.Flag{
			engineFlag,
			dirFlag,
			memoryFlag,
			initFlag,
			roundsFlag,
			updatesFlag,
			levelsFlag,
			seedFlag,
			cpuProfileFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if profile := ctx.String(cpuProfileFlag.Name); profile != "" {
		if err := startCPUProfile(profile); err != nil {
			return err
		}
		defer stopCPUProfile()
	}

	engine := ctx.String(engineFlag.Name)
	levels := ctx.Int(levelsFlag.Name)
	rnd := rand.New(rand.NewSource(ctx.Int64(seedFlag.Name)))

	if ctx.Bool(memoryFlag.Name) {
		return runMemory(ctx, engine, levels, rnd)
	}
	return runLevelDb(ctx, engine, levels, rnd)
}

// runLevelDb benchmarks the engine over LevelDB, one explicitly committed
// transaction per round.
func runLevelDb(ctx *cli.Context, engine string, levels int, rnd *rand.Rand) error {
	dir := ctx.String(dirFlag.Name)
	if dir == "" {
		tmp, err := os.MkdirTemp("", "smt-bench")
		if err != nil {
			return fmt.Errorf("failed to create benchmark directory: %w", err)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}
	db, err := backend.OpenLevelDb(dir, nil)
	if err != nil {
		return fmt.Errorf("failed to open level db: %w", err)
	}
	defer db.Close()

	runRound := func(updates int) (smt.AccessStats, error) {
		tx, err := db.OpenTransaction()
		if err != nil {
			return smt.AccessStats{}, fmt.Errorf("failed to open transaction: %w", err)
		}
		store, err := newNodeStore(engine, backend.NewLevelDbStore(tx))
		if err != nil {
			tx.Discard()
			return smt.AccessStats{}, err
		}
		if err := applyUpdates(store, rnd, updates, levels); err != nil {
			tx.Discard()
			return smt.AccessStats{}, err
		}
		if err := flushStore(store); err != nil {
			tx.Discard()
			return smt.AccessStats{}, err
		}
		if err := tx.Commit(); err != nil {
			return smt.AccessStats{}, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return store.Stats(), nil
	}

	return runRounds(ctx, runRound)
}

// runMemory benchmarks the engine over the in-memory store, removing the
// database's on-disk cost from the measurement.
func runMemory(ctx *cli.Context, engine string, levels int, rnd *rand.Rand) error {
	db := backend.NewMemoryStore()

	runRound := func(updates int) (smt.AccessStats, error) {
		store, err := newNodeStore(engine, db)
		if err != nil {
			return smt.AccessStats{}, err
		}
		if err := applyUpdates(store, rnd, updates, levels); err != nil {
			return smt.AccessStats{}, err
		}
		if err := flushStore(store); err != nil {
			return smt.AccessStats{}, err
		}
		return store.Stats(), nil
	}

	return runRounds(ctx, runRound)
}

func runRounds(ctx *cli.Context, runRound func(updates int) (smt.AccessStats, error)) error {
	start := time.Now()
	if _, err := runRound(ctx.Int(initFlag.Name)); err != nil {
		return err
	}
	fmt.Printf("Initialized in %v\n", time.Since(start))

	total := smt.AccessStats{}
	benchStart := time.Now()
	for round := 0; round < ctx.Int(roundsFlag.Name); round++ {
		roundStart := time.Now()
		stats, err := runRound(ctx.Int(updatesFlag.Name))
		if err != nil {
			return err
		}
		total.Reads += stats.Reads
		total.Writes += stats.Writes
		fmt.Printf("Round #%d, elapsed time: %v, stats: %v\n", round, time.Since(roundStart), stats)
	}
	fmt.Printf("\nRunning time: %v\nTotal: %v\n", time.Since(benchStart), total)
	return nil
}

func newNodeStore(engine string, db backend.KvStore) (smt.NodeStore, error) {
	switch engine {
	case "packed":
		return smt.NewPackedStore(db), nil
	case "direct":
		return smt.NewDirectStore(db), nil
	case "batched":
		return smt.NewBatchedPackedStore(db), nil
	}
	return nil, fmt.Errorf("unknown engine %q", engine)
}

func flushStore(store smt.NodeStore) error {
	if flusher, ok := store.(common.Flusher); ok {
		return flusher.Flush()
	}
	return nil
}
