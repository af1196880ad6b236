package chainnames

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Name(30101), "ethereum endpoint id must resolve to a registered chain name")
	require.Empty(t, Name(12345), "unknown endpoint ids have no name")
}

func TestDefaultCandidates(t *testing.T) {
	t.Parallel()

	candidates := DefaultCandidates()
	require.NotEmpty(t, candidates)
	require.Contains(t, candidates, uint32(30101))
	require.Contains(t, candidates, uint32(30109))
	require.True(t, sort.SliceIsSorted(candidates, func(i, j int) bool {
		return candidates[i] < candidates[j]
	}))
}
