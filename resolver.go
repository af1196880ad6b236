// Package oappscan reconstructs the peer directory of an OApp program: the
// mapping from remote endpoint ids to the peer contract address each id is
// configured to trust. The ledger exposes no such query directly, so the
// resolver derives candidate record addresses, fetches the raw buffers and
// extracts the embedded peer addresses heuristically.
package oappscan

import (
	"context"
	"sort"
	"sync"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lzkit/oappscan/extract"
	"github.com/lzkit/oappscan/ledger"
	"github.com/lzkit/oappscan/pda"
)

// peerRecordName is the record type name used for the best-effort marker
// check on fetched peer buffers.
const peerRecordName = "PeerConfig"

// attributionConcurrency bounds the candidate address precompute in
// Enumerate.
const attributionConcurrency = 8

// Resolver orchestrates address derivation, account fetching and field
// extraction. Lookups share no mutable state and are idempotent.
type Resolver struct {
	reader ledger.AccountReader
	log    *zap.Logger
}

type ResolverOption func(*Resolver)

// WithLogger sets the logger used for batch-mode skips and anomaly warnings.
func WithLogger(log *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

// NewResolver creates a Resolver over the given account reader.
func NewResolver(reader ledger.AccountReader, opts ...ResolverOption) *Resolver {
	r := &Resolver{reader: reader, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Store derives and fetches the program's global configuration record. On a
// fetch failure the returned StoreInfo still carries the derived address and
// bump, so callers can degrade the report instead of aborting.
func (r *Resolver) Store(ctx context.Context, program solana.PublicKey) (StoreInfo, error) {
	addr, bump, err := pda.FindStoreAddress(program)
	if err != nil {
		return StoreInfo{}, err
	}

	info := StoreInfo{Address: addr, Bump: bump}

	acct, err := r.reader.FetchAccount(ctx, addr)
	if err != nil {
		return info, err
	}
	if acct == nil {
		return info, nil
	}

	info.Exists = true
	info.Owner = acct.Owner
	info.DataLen = len(acct.Data)
	info.Admin = decodeStoreAdmin(acct.Data)

	return info, nil
}

// decodeStoreAdmin reads the admin key that follows the 8-byte record marker
// in the store layout. Best effort: nil on any decode failure.
func decodeStoreAdmin(data []byte) *solana.PublicKey {
	if len(data) < 8+solana.PublicKeyLength {
		return nil
	}

	decoder := bin.NewBorshDecoder(data)
	if _, err := decoder.ReadNBytes(8); err != nil {
		return nil
	}

	var admin solana.PublicKey
	if err := decoder.Decode(&admin); err != nil || admin.IsZero() {
		return nil
	}

	return &admin
}

// ResolvePeer looks up the peer record for one endpoint id. Both byte-order
// candidate addresses are derived and fetched concurrently; the record, when
// present, is expected at exactly one of them. A record under both orders is
// reported as AmbiguousByteOrderError rather than silently resolved.
func (r *Resolver) ResolvePeer(ctx context.Context, program, store solana.PublicKey, eid uint32) (ResolvedPeer, error) {
	leAddr, beAddr, err := pda.FindPeerAddresses(program, store, eid)
	if err != nil {
		return ResolvedPeer{}, err
	}

	// A palindromic id byte pattern derives the same address under both
	// orders, so the order cannot be established even when the record
	// exists.
	if leAddr == beAddr {
		acct, err := r.reader.FetchAccount(ctx, leAddr)
		if err != nil {
			return ResolvedPeer{}, err
		}

		peer := ResolvedPeer{EID: eid, Attributed: true, Order: pda.OrderUnknown, Address: leAddr, Ambiguous: acct != nil}

		return r.fill(peer, acct), nil
	}

	var leAcct, beAcct *ledger.Account
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leAcct, err = r.reader.FetchAccount(gctx, leAddr)

		return err
	})
	g.Go(func() error {
		var err error
		beAcct, err = r.reader.FetchAccount(gctx, beAddr)

		return err
	})
	if err := g.Wait(); err != nil {
		return ResolvedPeer{}, err
	}

	switch {
	case leAcct != nil && beAcct != nil:
		return ResolvedPeer{}, &AmbiguousByteOrderError{EID: eid, AddressLE: leAddr, AddressBE: beAddr}
	case leAcct != nil:
		return r.fill(ResolvedPeer{EID: eid, Attributed: true, Order: pda.LittleEndian, Address: leAddr}, leAcct), nil
	case beAcct != nil:
		return r.fill(ResolvedPeer{EID: eid, Attributed: true, Order: pda.BigEndian, Address: beAddr}, beAcct), nil
	default:
		r.log.Debug("no peer record found for endpoint id",
			zap.Uint32("eid", eid), zap.Stringer("le", leAddr), zap.Stringer("be", beAddr))

		return ResolvedPeer{EID: eid, Attributed: true, Order: pda.OrderUnknown}, nil
	}
}

// fill completes a ResolvedPeer from a fetched buffer. A nil account leaves
// Exists false; a buffer with no matching window leaves RemoteAddress nil.
func (r *Resolver) fill(peer ResolvedPeer, acct *ledger.Account) ResolvedPeer {
	if acct == nil {
		return peer
	}

	peer.Exists = true
	peer.DataLen = len(acct.Data)

	if !extract.HasMarker(acct.Data, peerRecordName) {
		r.log.Debug("peer record marker mismatch; buffer may not be the assumed record type",
			zap.Stringer("address", peer.Address))
	}

	cand, ok := extract.First(acct.Data)
	if !ok {
		return peer
	}

	addr := cand.Address
	peer.RemoteAddress = &addr
	peer.Offset = cand.Offset

	return peer
}

// Enumerate lists every account owned by the program, keeps those whose
// buffer length equals recordLen and attributes each back to a candidate
// endpoint id by recomputing the candidate addresses under both byte orders.
// Records matching no candidate are reported as unattributed, never dropped.
// Attributed results sort ascending by endpoint id, unattributed results
// follow sorted by address.
func (r *Resolver) Enumerate(ctx context.Context, program, store solana.PublicKey, candidates []uint32, recordLen int) ([]ResolvedPeer, error) {
	accounts, err := r.reader.ListProgramAccounts(ctx, program)
	if err != nil {
		return nil, err
	}

	var tracked []ledger.ProgramAccount
	for _, acct := range accounts {
		if len(acct.Data) == recordLen {
			tracked = append(tracked, acct)
		}
	}

	// The record length is observed empirically, not derived from a schema.
	// A non-empty program with zero tracked accounts is more likely a
	// layout change than an empty peer directory.
	if len(accounts) > 0 && len(tracked) == 0 {
		r.log.Warn("program owns accounts but none match the tracked record length; the record layout may have changed",
			zap.Int("recordLen", recordLen), zap.Int("accounts", len(accounts)))
	}

	table := r.attributionTable(program, store, candidates)

	out := make([]ResolvedPeer, 0, len(tracked))
	for _, acct := range tracked {
		peer := ResolvedPeer{Address: acct.Address, Order: pda.OrderUnknown, Exists: true, DataLen: len(acct.Data)}
		if attr, ok := table[acct.Address]; ok {
			peer.EID = attr.eid
			peer.Attributed = true
			peer.Order = attr.order
		}

		if !extract.HasMarker(acct.Data, peerRecordName) {
			r.log.Debug("peer record marker mismatch; buffer may not be the assumed record type",
				zap.Stringer("address", acct.Address))
		}

		cands := extract.All(acct.Data)
		if len(cands) > 0 {
			addr := cands[0].Address
			peer.RemoteAddress = &addr
			peer.Offset = cands[0].Offset

			if len(cands) > 1 {
				r.log.Debug("record holds multiple distinct peer address candidates",
					zap.Stringer("address", acct.Address), zap.Int("count", len(cands)))
			}
		}

		out = append(out, peer)
	}

	sortPeers(out)

	return out, nil
}

type attribution struct {
	eid   uint32
	order pda.ByteOrder
}

// attributionTable derives both candidate addresses for every endpoint id.
// A derivation failure skips that id and the batch continues.
func (r *Resolver) attributionTable(program, store solana.PublicKey, candidates []uint32) map[solana.PublicKey]attribution {
	table := make(map[solana.PublicKey]attribution, 2*len(candidates))

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(attributionConcurrency)

	for _, eid := range candidates {
		g.Go(func() error {
			le, be, err := pda.FindPeerAddresses(program, store, eid)
			if err != nil {
				r.log.Warn("skipping candidate endpoint id: derivation failed",
					zap.Uint32("eid", eid), zap.Error(err))

				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if le == be {
				table[le] = attribution{eid: eid, order: pda.OrderUnknown}
			} else {
				table[le] = attribution{eid: eid, order: pda.LittleEndian}
				table[be] = attribution{eid: eid, order: pda.BigEndian}
			}

			return nil
		})
	}
	_ = g.Wait()

	return table
}

func sortPeers(peers []ResolvedPeer) {
	sort.SliceStable(peers, func(i, j int) bool {
		a, b := peers[i], peers[j]
		if a.Attributed != b.Attributed {
			return a.Attributed
		}
		if a.Attributed && a.EID != b.EID {
			return a.EID < b.EID
		}

		return a.Address.String() < b.Address.String()
	})
}
