package format

type (
	ArtifactKind    uint8
	CompressionType uint8
)

const (
	KindRaw        ArtifactKind = 0x1 // KindRaw represents an artifact with opaque payload bytes.
	KindFile       ArtifactKind = 0x2 // KindFile represents checked-in file content.
	KindStructural ArtifactKind = 0x3 // KindStructural represents a parsed card-grammar artifact.

	CompressionNone CompressionType = 0x1 // CompressionNone disables cache-entry compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k ArtifactKind) String() string {
	switch k {
	case KindRaw:
		return "Raw"
	case KindFile:
		return "File"
	case KindStructural:
		return "Structural"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
