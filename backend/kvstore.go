package backend

//go:generate mockgen -source kvstore.go -destination kvstore_mocks.go -package backend

import (
	"fmt"

	"github.com/hashfold/smtstore/common"
)

// TableSpace divides the key-value storage into namespaces by adding a prefix to the key.
type TableSpace byte

const (
	// BranchStoreKey is a tablespace for branch-node records. Depending on the
	// engine a record holds either one encoded branch node or one packed subtree.
	BranchStoreKey TableSpace = 'B'
	// LeafStoreKey is a tablespace for leaf records.
	LeafStoreKey TableSpace = 'L'
)

// ErrNotFound is reported by Get when the addressed record does not exist.
// An absent record is not a failure; callers map it to their own
// missing-value result.
const ErrNotFound = common.ConstError("record not found")

// DbKey expects max size of a 33B key (one height byte plus a 32-byte path)
// plus one byte for the table prefix.
type DbKey [34]byte

func (d DbKey) ToBytes() []byte {
	return d[:]
}

// ToDBKey converts the input key to its respective table space key.
func ToDBKey(t TableSpace, key []byte) DbKey {
	var dbKey DbKey
	dbKey[0] = byte(t)
	if n := copy(dbKey[1:], key); n < len(key) {
		panic(fmt.Sprintf("input key does not fit into dbkey: len(key) > len(DbKey)-1: %d > %d", len(key), len(dbKey)-1))
	}
	return dbKey
}

// KvStore is the minimal contract the storage engines require from the
// underlying key-value layer. Durability and isolation are entirely the
// implementation's business; where atomicity is needed, an implementation is
// expected to be scoped to a caller-managed transaction with an explicit
// commit. The engines never commit on their own.
type KvStore interface {
	// Get returns the value stored for the key, or ErrNotFound if there is none.
	Get(table TableSpace, key []byte) ([]byte, error)

	// Insert stores the value under the key, overwriting any previous value.
	Insert(table TableSpace, key []byte, value []byte) error

	// Delete removes the record for the key; deleting an absent key is not an error.
	Delete(table TableSpace, key []byte) error
}
