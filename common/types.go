package common

import "encoding/hex"

// Hash is a 32-byte word. It is used for tree paths, leaf keys, leaf values
// and the base nodes of merge values.
type Hash [32]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
