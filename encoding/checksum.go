package encoding

import "encoding/binary"

// Checksum computes the repository's 32-bit checksum of data: the sum,
// modulo 2^32, of the buffer read as big-endian uint32 words, with the tail
// zero-padded to a word boundary. A buffer whose length is already a
// multiple of 4 gets no padding word.
//
// Delta streams declare this sum over their reconstruction target; the delta
// decoder recomputes it when verification is enabled.
func Checksum(data []byte) uint32 {
	var sum uint32

	aligned := len(data) &^ 3
	for i := 0; i < aligned; i += 4 {
		sum += binary.BigEndian.Uint32(data[i:])
	}

	if aligned < len(data) {
		var tail [4]byte
		copy(tail[:], data[aligned:])
		sum += binary.BigEndian.Uint32(tail[:])
	}

	return sum
}
