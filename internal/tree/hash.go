package tree

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// subtreeHash computes the order-sensitive structural hash of a node from its
// own content and the already-computed hashes of its children. Two subtrees
// hash equal only when they are structurally and value identical (collisions
// aside); in particular the same multiset of child hashes in a different
// order yields a different hash.
func subtreeHash(data *NodeData, isLeaf bool, childHashes []uint64) uint64 {
	d := xxhash.New()
	// Length-prefix the variable-width fields so distinct (kind, label)
	// pairs can never collide by concatenation.
	writeString(d, data.Kind)
	writeString(d, data.Label)
	if isLeaf && data.Value != nil {
		writeString(d, fmt.Sprintf("%T=%v", data.Value, data.Value))
	} else {
		writeString(d, "")
	}
	var buf [8]byte
	for _, h := range childHashes {
		binary.LittleEndian.PutUint64(buf[:], h)
		d.Write(buf[:])
	}
	return d.Sum64()
}

func writeString(d *xxhash.Digest, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	d.Write(buf[:])
	d.WriteString(s)
}
