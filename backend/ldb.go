package backend

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDb is an interface missing in original LevelDB design.
// It contains methods common for the LevelDB instance and its Transactions.
// It allows for easy switching between transactional and non-transactional accesses.
type LevelDb interface {

	// Get gets the value for the given key. It returns ErrNotFound if the
	// DB does not contain the key.
	//
	// The returned slice is its own copy, it is safe to modify the contents
	// of the returned slice.
	// It is safe to modify the contents of the argument after Get returns.
	Get(key []byte, ro *opt.ReadOptions) (value []byte, err error)

	// Has returns true if the DB does contain the given key.
	//
	// It is safe to modify the contents of the argument after Has returns.
	Has(key []byte, ro *opt.ReadOptions) (bool, error)

	// Put sets the value for the given key. It overwrites any previous value
	// for that key; a DB is not a multi-map.
	//
	// It is safe to modify the contents of the arguments after Put returns.
	Put(key, value []byte, wo *opt.WriteOptions) error

	// Delete deletes the value for the given key.
	//
	// It is safe to modify the contents of the arguments after Delete returns.
	Delete(key []byte, wo *opt.WriteOptions) error
}

// OpenLevelDb opens the LevelDB instance in the given directory.
func OpenLevelDb(path string, options *opt.Options) (*leveldb.DB, error) {
	return leveldb.OpenFile(path, options)
}

// LevelDbStore is a KvStore backed by a LevelDB database or one of its
// transactions. When constructed over a *leveldb.Transaction, all operations
// stay invisible to other readers until the caller commits.
type LevelDbStore struct {
	db LevelDb
}

func NewLevelDbStore(db LevelDb) *LevelDbStore {
	return &LevelDbStore{db: db}
}

func (s *LevelDbStore) Get(table TableSpace, key []byte) ([]byte, error) {
	data, err := s.db.Get(ToDBKey(table, key).ToBytes(), nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read from level db: %w", err)
	}
	return data, nil
}

func (s *LevelDbStore) Insert(table TableSpace, key []byte, value []byte) error {
	if err := s.db.Put(ToDBKey(table, key).ToBytes(), value, nil); err != nil {
		return fmt.Errorf("failed to write into level db: %w", err)
	}
	return nil
}

func (s *LevelDbStore) Delete(table TableSpace, key []byte) error {
	if err := s.db.Delete(ToDBKey(table, key).ToBytes(), nil); err != nil {
		return fmt.Errorf("failed to delete from level db: %w", err)
	}
	return nil
}
