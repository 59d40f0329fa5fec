package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/suffix-labs/btctx/pkg/api"
	"github.com/suffix-labs/btctx/pkg/config"
	"github.com/suffix-labs/btctx/pkg/wire"
)

func decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode a hex transaction (argument or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			logger := zerolog.Ctx(ctx)

			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				data, err := readInput(cmd, "")
				if err != nil {
					return err
				}
				input = string(data)
			}

			raw, err := api.ParseHex(input)
			if err != nil {
				return err
			}

			tx, n, err := api.Decode(raw, cfg.DecodeOptions())
			if err != nil {
				logger.Debug().
					Str("kind", wire.Kind(err).String()).
					Err(err).
					Msg("decode failed")
				return err
			}

			trailing := len(raw) - n
			logger.Debug().
				Int("consumed", n).
				Int("inputs", len(tx.Inputs)).
				Int("trailing", trailing).
				Msg("decoded transaction")
			if trailing > 0 {
				logger.Warn().Int("trailing", trailing).Msg("ignoring bytes after transaction")
			}

			out, err := api.Marshal(tx, cfg.OutputFormat())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func encodeCommand() *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON or YAML transaction document to hex",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.Ctx(cmd.Context())

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(cmd, name)
			if err != nil {
				return err
			}

			format := api.DetectFormat(data)
			if inputFormat != "" {
				if format, err = api.ParseFormat(inputFormat); err != nil {
					return err
				}
			}

			tx, err := api.Unmarshal(data, format)
			if err != nil {
				return err
			}
			logger.Debug().
				Str("format", string(format)).
				Int("inputs", len(tx.Inputs)).
				Int("size", tx.SerializeSize()).
				Msg("encoded transaction")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), api.EncodeHex(tx))
			return err
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "input document format: json or yaml (default: detect)")
	return cmd
}
