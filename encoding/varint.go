package encoding

// varintDigits is the 64-symbol alphabet of the repository's variable-length
// integers, in value order: '0' encodes 0, '~' encodes 63. Each symbol
// carries 6 bits; any byte outside the alphabet terminates the integer.
const varintDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz~"

// varintValue maps a byte to its 6-bit digit value, or -1 for bytes outside
// the alphabet.
var varintValue = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for v, c := range []byte(varintDigits) {
		t[c] = int8(v) //nolint:gosec
	}

	return t
}()

// GetVarint decodes a variable-length integer from buf starting at pos.
//
// It accumulates 6 bits per recognized symbol, most significant first, and
// stops at the first byte outside the alphabet (which is not consumed) or at
// the end of the buffer. It returns the decoded value and the offset of the
// first unconsumed byte.
//
// A run of zero digits yields (0, pos); callers that need to distinguish
// "no integer" from "integer zero of zero digits" do so by comparing the
// returned offset against pos.
func GetVarint(buf []byte, pos int) (uint64, int) {
	var v uint64
	for pos < len(buf) {
		d := varintValue[buf[pos]]
		if d < 0 {
			break
		}
		v = v<<6 + uint64(d)
		pos++
	}

	return v, pos
}

// PutVarint appends the variable-length encoding of v to dst and returns the
// extended slice. The encoding is the shortest digit run that round-trips
// through GetVarint; zero encodes as the single symbol '0'.
//
// The read path never encodes, but the writer is kept so the codec can be
// exercised symmetrically and so tests can build delta fixtures.
func PutVarint(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}

	var tmp [11]byte // ceil(64/6) digits covers any uint64
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = varintDigits[v&0x3f]
		v >>= 6
	}

	return append(dst, tmp[i:]...)
}
