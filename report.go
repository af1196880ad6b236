package oappscan

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/olekukonko/tablewriter"

	"github.com/lzkit/oappscan/internal/chainnames"
)

// Report is the ephemeral per-invocation output: the program, its global
// configuration record and either one targeted peer or the enumerated
// directory.
type Report struct {
	Program      solana.PublicKey `json:"program"`
	Store        StoreInfo        `json:"store"`
	Peer         *ResolvedPeer    `json:"peer,omitempty"`
	Peers        []ResolvedPeer   `json:"peers,omitempty"`
	Unattributed []ResolvedPeer   `json:"unattributed,omitempty"`
}

// NewTargetedReport builds the report for a single endpoint id lookup.
func NewTargetedReport(program solana.PublicKey, store StoreInfo, peer ResolvedPeer) *Report {
	return &Report{Program: program, Store: store, Peer: &peer}
}

// NewBatchReport builds the report for an enumeration, splitting attributed
// records from unattributed ones. The input is already ordered by the
// resolver and the split preserves that order.
func NewBatchReport(program solana.PublicKey, store StoreInfo, peers []ResolvedPeer) *Report {
	report := &Report{Program: program, Store: store}
	for _, peer := range peers {
		if peer.Attributed {
			report.Peers = append(report.Peers, peer)
		} else {
			report.Unattributed = append(report.Unattributed, peer)
		}
	}

	return report
}

// JSON writes the report as indented JSON.
func (r *Report) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// Text writes the human-readable report.
func (r *Report) Text(w io.Writer) error {
	fmt.Fprintf(w, "program: %s\n", r.Program)

	switch {
	case r.Store.Exists && r.Store.Admin != nil:
		fmt.Fprintf(w, "store:   %s (bump %d, owner %s, %d bytes, admin %s)\n",
			r.Store.Address, r.Store.Bump, r.Store.Owner, r.Store.DataLen, r.Store.Admin)
	case r.Store.Exists:
		fmt.Fprintf(w, "store:   %s (bump %d, owner %s, %d bytes)\n",
			r.Store.Address, r.Store.Bump, r.Store.Owner, r.Store.DataLen)
	default:
		fmt.Fprintf(w, "store:   %s (not found)\n", r.Store.Address)
	}

	if r.Peer != nil {
		writePeerLine(w, *r.Peer)
	}

	if len(r.Peers) > 0 || len(r.Unattributed) > 0 {
		if err := r.writeTable(w); err != nil {
			return err
		}
	}

	return nil
}

func writePeerLine(w io.Writer, peer ResolvedPeer) {
	label := fmt.Sprintf("eid %d", peer.EID)
	if name := chainnames.Name(peer.EID); name != "" {
		label = fmt.Sprintf("eid %d (%s)", peer.EID, name)
	}

	switch {
	case !peer.Exists:
		fmt.Fprintf(w, "peer:    %s: no record found under either byte order\n", label)
	case peer.RemoteAddress == nil:
		fmt.Fprintf(w, "peer:    %s: record at %s (%s, %d bytes) but no peer address field matched\n",
			label, peer.Address, peer.Order, peer.DataLen)
	default:
		fmt.Fprintf(w, "peer:    %s: %s (%s) -> %s at offset %d\n",
			label, peer.Address, peer.Order, hexutil.Encode(peer.RemoteAddress.Bytes()), peer.Offset)
	}

	if peer.Ambiguous {
		fmt.Fprintf(w, "warning: both byte orders derive the same address for eid %d; order is unknown\n", peer.EID)
	}
}

func (r *Report) writeTable(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("EID", "CHAIN", "ORDER", "RECORD", "REMOTE", "OFFSET")

	for _, peer := range r.Peers {
		_ = table.Append(peerRow(peer))
	}
	for _, peer := range r.Unattributed {
		_ = table.Append(peerRow(peer))
	}

	return table.Render()
}

func peerRow(peer ResolvedPeer) []string {
	eid, chain := "-", "-"
	if peer.Attributed {
		eid = strconv.FormatUint(uint64(peer.EID), 10)
		if name := chainnames.Name(peer.EID); name != "" {
			chain = name
		}
	}

	remote, offset := "-", "-"
	if peer.RemoteAddress != nil {
		remote = hexutil.Encode(peer.RemoteAddress.Bytes())
		offset = strconv.Itoa(peer.Offset)
	}

	return []string{eid, chain, peer.Order.String(), peer.Address.String(), remote, offset}
}
