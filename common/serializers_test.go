package common_test

import (
	"bytes"
	"testing"

	"github.com/hashfold/smtstore/common"
)

func TestHashSerializer(t *testing.T) {
	var s common.HashSerializer
	var _ common.Serializer[common.Hash] = s

	hash := common.Hash{0x01, 0x02, 31: 0xFF}
	data := s.ToBytes(hash)
	if len(data) != s.Size() {
		t.Fatalf("unexpected serialized size: got %d, wanted %d", len(data), s.Size())
	}
	if !bytes.Equal(data, hash[:]) {
		t.Errorf("unexpected serialized form: %x", data)
	}
	if restored := s.FromBytes(data); restored != hash {
		t.Errorf("round trip altered the hash: got %v, wanted %v", restored, hash)
	}
}
