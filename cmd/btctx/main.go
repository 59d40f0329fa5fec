// btctx CLI - Bitcoin transaction wire codec
//
// This CLI decodes legacy-format Bitcoin transactions (version, inputs,
// lock time) from hex, encodes them back from JSON or YAML documents and
// assembles new ones from outpoints.
//
// Example usage:
//
//	# Decode a raw transaction
//	btctx decode 0100000001...00000000
//
//	# Decode from stdin as YAML with strict compact sizes
//	BTCTX_REQUIRE_CANONICAL=true btctx --format yaml decode < tx.hex
//
//	# Encode a JSON document back to hex
//	btctx encode tx.json
//
//	# Build a transaction spending two outpoints
//	btctx build --version 2 --input <txid>:0 --input <txid>:1:0xfffffffd --lock-time 840000
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suffix-labs/btctx/pkg/api"
	"github.com/suffix-labs/btctx/pkg/config"
)

const programName = "btctx"

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "devel"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		debug      bool
		format     string
	)

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Decode, encode and build Bitcoin transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		BoolVarP(&debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVarP(&format, "format", "f", config.DefaultFormat, "output format: json, yaml, text or dump")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Command line flags win over the file and environment
		if cmd.Flags().Changed("format") {
			if _, err := api.ParseFormat(format); err != nil {
				return err
			}
			cfg.Format = format
		}
		if debug {
			cfg.LogLevel = zerolog.DebugLevel.String()
		}

		logger := newLogger(cmd.ErrOrStderr(), cfg)
		logger.Debug().
			Str("version", Version).
			Str("format", cfg.Format).
			Uint64("max_inputs", cfg.MaxInputs).
			Bool("require_canonical", cfg.RequireCanonical).
			Msg("config loaded")

		ctx := config.WithContext(cmd.Context(), cfg)
		cmd.SetContext(logger.WithContext(ctx))
		return nil
	}

	rootCmd.AddCommand(decodeCommand())
	rootCmd.AddCommand(encodeCommand())
	rootCmd.AddCommand(buildCommand())
	rootCmd.AddCommand(versionCommand())

	return rootCmd
}

// newLogger returns a zerolog logger writing to w. Pretty output uses the
// console writer, with colour only when w is a terminal.
func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	if cfg.PrettyLogs {
		isTerminal := false
		if f, ok := w.(*os.File); ok {
			isTerminal = term.IsTerminal(int(f.Fd()))
		}
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isTerminal,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(w).With().
		Timestamp().
		Str("component", programName).
		Logger().
		Level(cfg.Level())
}

// readInput returns the named file, or stdin when name is empty or "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}
