package extract

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// window builds one matching 32-byte window: 12 zero bytes followed by a
// 20-byte address tail.
func window(tail byte) []byte {
	buf := make([]byte, WindowSize)
	for i := zeroPrefixLen; i < WindowSize; i++ {
		buf[i] = tail
	}

	return buf
}

// filler is non-matching padding: no 12-zero run can form across it.
func filler(n int) []byte {
	return bytes.Repeat([]byte{0xff}, n)
}

func TestFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		buf        []byte
		wantOffset int
		wantAddr   common.Address
		wantMatch  bool
	}{
		{
			name: "empty buffer",
			buf:  nil,
		},
		{
			name: "buffer shorter than one window",
			buf:  make([]byte, WindowSize-1),
		},
		{
			name: "all zero bytes never match",
			buf:  make([]byte, 64),
		},
		{
			name:       "single non-zero byte at position 31",
			buf:        append(make([]byte, WindowSize-1), 0x01),
			wantOffset: 0,
			wantAddr:   common.HexToAddress("0x0000000000000000000000000000000000000001"),
			wantMatch:  true,
		},
		{
			name:       "match embedded at offset 8",
			buf:        append(append(filler(8), window(0xab)...), filler(16)...),
			wantOffset: 8,
			wantAddr:   common.HexToAddress("0xabababababababababababababababababababab"),
			wantMatch:  true,
		},
		{
			name: "non-zero byte inside the zero prefix rejects the window",
			buf: func() []byte {
				buf := window(0xab)
				buf[5] = 0x01

				return buf
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cand, ok := First(tt.buf)
			require.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				require.Equal(t, tt.wantOffset, cand.Offset)
				require.Equal(t, tt.wantAddr, cand.Address)
			}
		})
	}
}

func TestAll_Completeness(t *testing.T) {
	t.Parallel()

	// three valid windows separated by >=32 bytes of non-matching filler
	buf := filler(4)
	buf = append(buf, window(0x11)...)
	buf = append(buf, filler(40)...)
	buf = append(buf, window(0x22)...)
	buf = append(buf, filler(32)...)
	buf = append(buf, window(0x33)...)

	want := []Candidate{
		{Offset: 4, Address: common.HexToAddress("0x1111111111111111111111111111111111111111")},
		{Offset: 76, Address: common.HexToAddress("0x2222222222222222222222222222222222222222")},
		{Offset: 140, Address: common.HexToAddress("0x3333333333333333333333333333333333333333")},
	}

	got := All(buf)
	require.Empty(t, cmp.Diff(want, got))
}

func TestAll_DeduplicatesByValue(t *testing.T) {
	t.Parallel()

	// the same address stored twice collapses to the lowest offset
	buf := window(0xab)
	buf = append(buf, filler(32)...)
	buf = append(buf, window(0xab)...)

	got := All(buf)
	require.Len(t, got, 1)
	require.Equal(t, 0, got[0].Offset)
	require.Equal(t, common.HexToAddress("0xabababababababababababababababababababab"), got[0].Address)
}

func TestAll_Idempotent(t *testing.T) {
	t.Parallel()

	buf := append(append(filler(8), window(0xab)...), filler(40)...)
	orig := bytes.Clone(buf)

	first := All(buf)
	second := All(buf)

	require.Empty(t, cmp.Diff(first, second))
	require.Equal(t, orig, buf, "input buffer must not be mutated")
}

func TestAll_ShortBuffer(t *testing.T) {
	t.Parallel()

	require.Empty(t, All(make([]byte, WindowSize-1)))
	require.Empty(t, All(nil))
}

func TestHasMarker(t *testing.T) {
	t.Parallel()

	marker := Marker("PeerConfig")
	buf := append(marker[:], filler(64)...)

	require.True(t, HasMarker(buf, "PeerConfig"))
	require.False(t, HasMarker(buf, "Store"))
	require.False(t, HasMarker(buf[:4], "PeerConfig"))
	require.False(t, HasMarker(nil, "PeerConfig"))
}
