package safecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	t.Parallel()

	got, err := IntToUint32(30109)
	require.NoError(t, err)
	require.Equal(t, uint32(30109), got)

	_, err = IntToUint32(-1)
	require.ErrorContains(t, err, "exceeds uint32 range")

	_, err = IntToUint32(math.MaxUint32 + 1)
	require.ErrorContains(t, err, "exceeds uint32 range")
}

func TestInt64ToUint32(t *testing.T) {
	t.Parallel()

	got, err := Int64ToUint32(math.MaxUint32)
	require.NoError(t, err)
	require.Equal(t, uint32(math.MaxUint32), got)

	_, err = Int64ToUint32(math.MaxUint32 + 1)
	require.ErrorContains(t, err, "exceeds uint32 range")

	_, err = Int64ToUint32(-5)
	require.ErrorContains(t, err, "exceeds uint32 range")
}

func TestUint64ToUint32(t *testing.T) {
	t.Parallel()

	got, err := Uint64ToUint32(1)
	require.NoError(t, err)
	require.Equal(t, uint32(1), got)

	_, err = Uint64ToUint32(math.MaxUint64)
	require.ErrorContains(t, err, "exceeds uint32 range")
}
