package oappscan

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/lzkit/oappscan/ledger"
)

// fakeReader is a fake implementation of ledger.AccountReader backed by
// in-memory maps.
type fakeReader struct {
	accounts        map[solana.PublicKey]*ledger.Account
	programAccounts []ledger.ProgramAccount
	fetchErrs       map[solana.PublicKey]error
	listErr         error
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		accounts:  make(map[solana.PublicKey]*ledger.Account),
		fetchErrs: make(map[solana.PublicKey]error),
	}
}

func (f *fakeReader) FetchAccount(_ context.Context, address solana.PublicKey) (*ledger.Account, error) {
	if err, ok := f.fetchErrs[address]; ok {
		return nil, err
	}

	return f.accounts[address], nil
}

func (f *fakeReader) ListProgramAccounts(_ context.Context, _ solana.PublicKey) ([]ledger.ProgramAccount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.programAccounts, nil
}
