package oappscan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lzkit/oappscan"
	"github.com/lzkit/oappscan/internal/chainnames"
	"github.com/lzkit/oappscan/ledger"
	"github.com/lzkit/oappscan/pda"
)

func runScan(ctx context.Context, out io.Writer, cfg Config) error {
	program, err := solana.PublicKeyFromBase58(cfg.Program)
	if err != nil {
		return fmt.Errorf("invalid program identifier %q: %w", cfg.Program, err)
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	resolver := oappscan.NewResolver(ledger.NewClient(cfg.RPCEndpoint), oappscan.WithLogger(log))

	// The store lookup is auxiliary to the peer lookup: a fetch failure
	// degrades the report but only a derivation failure is fatal, since the
	// peer seeds need the derived store address.
	store, err := resolver.Store(ctx, program)
	if err != nil {
		var exhausted *pda.DerivationExhaustedError
		if errors.As(err, &exhausted) {
			return err
		}
		log.Warn("unable to fetch global config record; continuing with the derived address", zap.Error(err))
	}

	var report *oappscan.Report
	if cfg.BatchMode {
		candidates := cfg.CandidateEIDs
		if len(candidates) == 0 {
			candidates = chainnames.DefaultCandidates()
		}

		peers, err := resolver.Enumerate(ctx, program, store.Address, candidates, cfg.RecordLen)
		if err != nil {
			return err
		}
		report = oappscan.NewBatchReport(program, store, peers)
	} else {
		peer, err := resolver.ResolvePeer(ctx, program, store.Address, cfg.EID)
		if err != nil {
			return err
		}
		report = oappscan.NewTargetedReport(program, store, peer)
	}

	if cfg.JSONOutput {
		return report.JSON(out)
	}

	return report.Text(out)
}

// newLogger builds a stderr console logger: warnings by default, debug with
// --verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}
