package oappscan

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"github.com/lzkit/oappscan/pda"
)

// ResolvedPeer is the outcome of resolving one peer record. It is never
// mutated after creation.
type ResolvedPeer struct {
	// EID is the remote endpoint id the record is configured for. Zero with
	// Attributed=false when the record was found by enumeration and matched
	// no candidate id.
	EID        uint32 `json:"eid,omitempty"`
	Attributed bool   `json:"attributed"`

	// Order is the byte order whose derived address the record was found
	// at; OrderUnknown when it could not be determined.
	Order pda.ByteOrder `json:"byteOrder"`

	// Address is the record's storage address. Zero when Exists is false
	// and no single candidate address applies.
	Address solana.PublicKey `json:"address"`
	Exists  bool             `json:"exists"`

	// RemoteAddress is the extracted 20-byte peer address, nil when the
	// record exists but no window matched the extraction predicate.
	RemoteAddress *common.Address `json:"remoteAddress"`
	Offset        int             `json:"offset,omitempty"`
	DataLen       int             `json:"dataLen,omitempty"`

	// Ambiguous marks the anomaly where both byte orders led to on-chain
	// data, so the matching order could not be uniquely established.
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// StoreInfo describes the program's global configuration record.
type StoreInfo struct {
	Address solana.PublicKey `json:"address"`
	Bump    uint8            `json:"bump"`
	Exists  bool             `json:"exists"`
	Owner   solana.PublicKey `json:"owner,omitempty"`
	DataLen int              `json:"dataLen,omitempty"`

	// Admin is a best-effort decode of the store header; nil when the
	// buffer is too short or the decode fails.
	Admin *solana.PublicKey `json:"admin,omitempty"`
}
