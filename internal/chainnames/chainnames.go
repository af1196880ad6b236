// Package chainnames maps remote endpoint ids to the chains they identify,
// for report rendering and for the built-in candidate list used when no
// override is given.
package chainnames

import (
	"sort"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// evmChainIDs maps well-known mainnet endpoint ids in the cross-chain
// messaging namespace to the EVM chain id of the chain they address.
var evmChainIDs = map[uint32]uint64{
	30101: 1,     // ethereum
	30102: 56,    // bnb
	30106: 43114, // avalanche
	30109: 137,   // polygon
	30110: 42161, // arbitrum
	30111: 10,    // optimism
	30112: 250,   // fantom
	30125: 42220, // celo
	30145: 100,   // gnosis
	30183: 59144, // linea
	30184: 8453,  // base
	30195: 81457, // blast
	30196: 534352, // scroll
}

// Name returns a human-readable chain name for an endpoint id, or "" when
// the id is unknown or the chain has no registered name.
func Name(eid uint32) string {
	chainID, ok := evmChainIDs[eid]
	if !ok {
		return ""
	}

	selector, err := chainsel.SelectorFromChainId(chainID)
	if err != nil {
		return ""
	}

	chain, ok := chainsel.ChainBySelector(selector)
	if !ok {
		return ""
	}

	return chain.Name
}

// DefaultCandidates returns the built-in candidate endpoint id list, sorted
// ascending.
func DefaultCandidates() []uint32 {
	out := make([]uint32, 0, len(evmChainIDs))
	for eid := range evmChainIDs {
		out = append(out, eid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
