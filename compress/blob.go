package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrCorruptBlob is the sentinel wrapped by stored-content decoding
// failures: a truncated size header or a broken zlib stream.
var ErrCorruptBlob = errors.New("corrupt blob")

// blobHeaderSize is the length of the declared-size prefix on stored
// content.
const blobHeaderSize = 4

// DeclaredSize returns the original size declared in a stored blob's
// header. The value is advisory; see DecodeBlob.
func DeclaredSize(content []byte) (uint32, error) {
	if len(content) < blobHeaderSize {
		return 0, fmt.Errorf("%w: content shorter than size header", ErrCorruptBlob)
	}

	return binary.BigEndian.Uint32(content), nil
}

// DecodeBlob decodes one row of stored blob content: a 4-byte big-endian
// declared original size followed by a zlib stream. It returns the inflated
// bytes, newly allocated and owned by the caller.
//
// The declared size is not validated against the inflated length.
// Repositories exist in the wild whose headers disagree with the stream
// (pkgsrc.fossil is a known case) and the reference reader accepts them, so
// rejecting the mismatch would reject repositories other tools can read.
func DecodeBlob(content []byte) ([]byte, error) {
	size, err := DeclaredSize(content)
	if err != nil {
		return nil, err
	}

	zr, err := zlib.NewReader(bytes.NewReader(content[blobHeaderSize:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	defer zr.Close()

	out := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := io.Copy(out, zr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}

	return out.Bytes(), nil
}
