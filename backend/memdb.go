package backend

import (
	"fmt"

	"github.com/ethereum/go-ethereum/ethdb/memorydb"
)

// MemoryStore is an in-memory KvStore keeping all records in an ordered map.
// It is used in tests and in the benchmark's memory mode, where the on-disk
// cost of the database should not distort the measurement.
type MemoryStore struct {
	db *memorydb.Database
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{db: memorydb.New()}
}

func (s *MemoryStore) Get(table TableSpace, key []byte) ([]byte, error) {
	dbKey := ToDBKey(table, key).ToBytes()
	has, err := s.db.Has(dbKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read from memory db: %w", err)
	}
	if !has {
		return nil, ErrNotFound
	}
	data, err := s.db.Get(dbKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read from memory db: %w", err)
	}
	return data, nil
}

func (s *MemoryStore) Insert(table TableSpace, key []byte, value []byte) error {
	if err := s.db.Put(ToDBKey(table, key).ToBytes(), value); err != nil {
		return fmt.Errorf("failed to write into memory db: %w", err)
	}
	return nil
}

func (s *MemoryStore) Delete(table TableSpace, key []byte) error {
	if err := s.db.Delete(ToDBKey(table, key).ToBytes()); err != nil {
		return fmt.Errorf("failed to delete from memory db: %w", err)
	}
	return nil
}
