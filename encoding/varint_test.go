package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetVarint_Boundaries(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantPos int
	}{
		{"", 0, 0},
		{"0", 0, 1},
		{"9", 9, 1},
		{"A", 10, 1},
		{"Z", 35, 1},
		{"_", 36, 1},
		{"a", 37, 1},
		{"z", 62, 1},
		{"~", 63, 1},
		{"10", 64, 2},
		{"11", 65, 2},
		{"~~", 4095, 2},
	}

	for _, tt := range tests {
		v, pos := GetVarint([]byte(tt.input), 0)
		require.Equal(t, tt.want, v, "input %q", tt.input)
		require.Equal(t, tt.wantPos, pos, "input %q", tt.input)
	}
}

func TestGetVarint_StartOffset(t *testing.T) {
	buf := []byte("xx10,rest")
	v, pos := GetVarint(buf, 2)
	require.Equal(t, uint64(64), v)
	require.Equal(t, 4, pos)

	// Offset pointing at a non-digit advances nothing.
	v, pos = GetVarint(buf, 4)
	require.Equal(t, uint64(0), v)
	require.Equal(t, 4, pos)
}

func TestVarint_RoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 9, 10, 35, 36, 37, 62, 63, 64, 65,
		4095, 4096, 1 << 20, 1<<32 - 1, 1 << 32, 1 << 48,
		math.MaxUint64,
	}

	for _, want := range values {
		enc := PutVarint(nil, want)
		got, pos := GetVarint(enc, 0)
		require.Equal(t, want, got)
		require.Equal(t, len(enc), pos)
	}
}

func TestVarint_TerminatorStopsDecode(t *testing.T) {
	terminators := []byte{'\n', ',', ';', '@', ':', ' ', '-', 0x00, 0x7f, 0xff}

	for _, want := range []uint64{0, 63, 64, 123456789} {
		enc := PutVarint(nil, want)
		for _, term := range terminators {
			buf := append(append([]byte(nil), enc...), term)
			got, pos := GetVarint(buf, 0)
			require.Equal(t, want, got)
			require.Equal(t, len(enc), pos, "terminator %q must not be consumed", term)
		}
	}
}

func TestPutVarint_Zero(t *testing.T) {
	require.Equal(t, []byte("0"), PutVarint(nil, 0))
}

func TestPutVarint_AppendsToDst(t *testing.T) {
	out := PutVarint([]byte("D\n"), 64)
	require.Equal(t, []byte("D\n10"), out)
}
