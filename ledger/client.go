// Package ledger wraps the Solana JSON-RPC client behind the minimal
// account-reading surface the resolver needs.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Account is the state fetched for a single address.
type Account struct {
	Data     []byte
	Owner    solana.PublicKey
	Lamports uint64
}

// ProgramAccount is one entry from a whole-program account listing.
type ProgramAccount struct {
	Address solana.PublicKey
	Data    []byte
}

// AccountReader is the ledger surface consumed by the resolver. FetchAccount
// returns (nil, nil) when no account exists at the address.
type AccountReader interface {
	FetchAccount(ctx context.Context, address solana.PublicKey) (*Account, error)
	ListProgramAccounts(ctx context.Context, program solana.PublicKey) ([]ProgramAccount, error)
}

// RemoteFetchError wraps a transport failure for a single address lookup so
// batch callers can skip the item and continue.
type RemoteFetchError struct {
	Address solana.PublicKey
	Err     error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("unable to fetch account %s: %v", e.Address, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

var _ AccountReader = (*Client)(nil)

// Client implements AccountReader over a JSON-RPC endpoint at confirmed
// commitment.
type Client struct {
	rpc *rpc.Client
}

// NewClient creates a Client for the given RPC endpoint.
func NewClient(endpoint string) *Client {
	return &Client{rpc: rpc.New(endpoint)}
}

func (c *Client) FetchAccount(ctx context.Context, address solana.PublicKey) (*Account, error) {
	result, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &RemoteFetchError{Address: address, Err: err}
	}
	if result == nil || result.Value == nil {
		return nil, nil
	}

	return &Account{
		Data:     result.Value.Data.GetBinary(),
		Owner:    result.Value.Owner,
		Lamports: result.Value.Lamports,
	}, nil
}

func (c *Client) ListProgramAccounts(ctx context.Context, program solana.PublicKey) ([]ProgramAccount, error) {
	result, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list accounts owned by %s: %w", program, err)
	}

	out := make([]ProgramAccount, 0, len(result))
	for _, keyed := range result {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		out = append(out, ProgramAccount{
			Address: keyed.Pubkey,
			Data:    keyed.Account.Data.GetBinary(),
		})
	}

	return out, nil
}
