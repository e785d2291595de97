package compress

import (
	"fmt"

	"github.com/arloliu/fossick/format"
)

// Compressor compresses a byte payload.
//
// Memory contract for all implementations: the returned slice is newly
// allocated and owned by the caller (the NoOp codec, which performs no
// transformation, may return the input unchanged), and the input slice is
// never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm. It validates the
// input format and returns an error on corrupt or mismatched data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. The blob cache holds one Codec and passes
// every entry through it on insert and on hit.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec returns the built-in Codec for the given compression type.
// All built-in codecs are stateless and safe to share.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
