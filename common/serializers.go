package common

// Serializer converts a value into its fixed-width binary form and back.
type Serializer[V any] interface {
	ToBytes(V) []byte
	FromBytes([]byte) V
	Size() int // size in bytes when serialized
}

// HashSerializer is a Serializer of the Hash type
type HashSerializer struct{}

func (a HashSerializer) ToBytes(hash Hash) []byte {
	return hash[:]
}
func (a HashSerializer) FromBytes(bytes []byte) Hash {
	var hash Hash
	copy(hash[:], bytes)
	return hash
}
func (a HashSerializer) Size() int {
	return 32
}
