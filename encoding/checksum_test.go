package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum_Vectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"empty", nil, 0},
		{"single word", []byte{0x00, 0x00, 0x00, 0x01}, 1},
		{"all ones word", []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFF},
		{"padded tail", []byte{0x00, 0x00, 0x00, 0x01, 0xFF}, 0xFF000001},
		{"one byte", []byte{0x80}, 0x80000000},
		{"three bytes", []byte{0x01, 0x02, 0x03}, 0x01020300},
		{"wraparound", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x01}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Checksum(tt.data))
		})
	}
}

func TestChecksum_AlignedGetsNoPadding(t *testing.T) {
	// A trailing zero word contributes nothing either way; the aligned
	// buffer must not be extended past its own residual bytes.
	aligned := []byte{0x00, 0x00, 0x00, 0x2A}
	require.Equal(t, uint32(42), Checksum(aligned))
}

func TestChecksum_Linearity(t *testing.T) {
	a := []byte("exactly16bytes!!") // length multiple of 4
	require.Zero(t, len(a)%4)

	bs := [][]byte{
		nil,
		[]byte{0x01},
		[]byte("odd"),
		[]byte("some longer tail with an uneven length."),
	}

	for _, b := range bs {
		joined := append(append([]byte(nil), a...), b...)
		require.Equal(t, Checksum(a)+Checksum(b), Checksum(joined))
	}
}
