package oappscan

import (
	"github.com/spf13/cobra"
)

// BuildOAppScanCmd assembles the oappscan command.
func BuildOAppScanCmd() *cobra.Command {
	var (
		eid       uint32
		batchMode bool
		eidList   string
		rpcFlag   string
		jsonOut   bool
		recordLen int
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "oappscan PROGRAM_ID",
		Short: "Inspect an OApp program's peer directory",
		Long: `Derives the storage addresses of an OApp program's per-remote-chain peer
records, fetches them and extracts the configured 20-byte peer contract
addresses. With --all, every program-owned record of the tracked length is
enumerated and attributed back to a candidate endpoint id.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := Config{
				RPCEndpoint: resolveEndpoint(rpcFlag),
				Program:     args[0],
				EID:         eid,
				BatchMode:   batchMode,
				RecordLen:   recordLen,
				JSONOutput:  jsonOut,
				Verbose:     verbose,
			}

			if eidList != "" {
				ids, err := parseEIDList(eidList)
				if err != nil {
					return err
				}
				cfg.CandidateEIDs = ids
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runScan(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().Uint32Var(&eid, "eid", defaultEID, "remote endpoint id for the targeted lookup")
	cmd.Flags().BoolVar(&batchMode, "all", false, "enumerate every program-owned peer record instead of a targeted lookup")
	cmd.Flags().StringVar(&eidList, "eids", "", "comma-separated candidate endpoint ids for --all attribution")
	cmd.Flags().StringVar(&rpcFlag, "rpc", "", "RPC endpoint (default: RPC_URL from the environment, then mainnet-beta)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the report as JSON")
	cmd.Flags().IntVar(&recordLen, "record-len", defaultRecordLen, "peer record length used to filter program accounts in --all mode")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}
