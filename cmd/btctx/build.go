package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/suffix-labs/btctx/pkg/api"
)

func buildCommand() *cobra.Command {
	var (
		version  uint32
		inputs   []string
		lockTime uint32
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a transaction from outpoints and print its hex",
		Long: `Build a transaction from outpoints and print its hex.

Each --input is txid:vout[:sequence[:scripthex]]. The sequence defaults to
0xffffffff and the signature script to empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.Ctx(cmd.Context())

			req := &api.TransactionRequest{
				Version:  version,
				LockTime: lockTime,
			}
			for i, s := range inputs {
				in, err := api.ParseInputSpec(s)
				if err != nil {
					return err
				}
				// An all-zero txid only appears in coinbase inputs.
				if in.OutPoint.TxID.IsZero() {
					logger.Warn().
						Int("input", i).
						Stringer("outpoint", in.OutPoint).
						Msg("input spends the null txid")
				}
				req.Inputs = append(req.Inputs, in)
			}

			tx, err := api.BuildTransaction(req)
			if err != nil {
				return err
			}
			logger.Debug().
				Uint32("version", version).
				Int("inputs", len(tx.Inputs)).
				Uint32("lock_time", lockTime).
				Msg("built transaction")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), api.EncodeHex(tx))
			return err
		},
	}

	cmd.Flags().Uint32Var(&version, "version", 1, "transaction version")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "input as txid:vout[:sequence[:scripthex]] (repeatable)")
	cmd.Flags().Uint32Var(&lockTime, "lock-time", 0, "transaction lock time")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", programName, Version)
		},
	}
}
