package api

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/suffix-labs/btctx/pkg/wire"
)

// InputSpec describes one input given on the command line.
type InputSpec struct {
	OutPoint        wire.OutPoint
	Sequence        *uint32 // nil = wire.MaxSequence
	SignatureScript []byte
}

// TransactionRequest contains everything needed to build a transaction.
type TransactionRequest struct {
	Version  uint32
	Inputs   []InputSpec
	LockTime uint32
}

// ParseInputSpec parses "<txid>:<vout>[:<sequence>[:<script hex>]]".
//
// The sequence accepts decimal or 0x-prefixed hex; an empty sequence field
// keeps the default so a script can be given without one ("txid:0::51").
func ParseInputSpec(s string) (InputSpec, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 2 {
		return InputSpec{}, fmt.Errorf("input %q: want txid:vout[:sequence[:script]]: %w",
			s, wire.ErrInvalidFormat)
	}

	op, err := wire.ParseOutPoint(parts[0] + ":" + parts[1])
	if err != nil {
		return InputSpec{}, fmt.Errorf("input %q: %w", s, err)
	}
	spec := InputSpec{OutPoint: op}

	if len(parts) > 2 && parts[2] != "" {
		seq, err := strconv.ParseUint(parts[2], 0, 32)
		if err != nil {
			return InputSpec{}, fmt.Errorf("input %q: bad sequence: %w: %v",
				s, wire.ErrInvalidFormat, err)
		}
		v := uint32(seq)
		spec.Sequence = &v
	}

	if len(parts) > 3 {
		script, err := hex.DecodeString(parts[3])
		if err != nil {
			return InputSpec{}, fmt.Errorf("input %q: bad script: %w: %v",
				s, wire.ErrInvalidFormat, err)
		}
		spec.SignatureScript = script
	}

	return spec, nil
}

// BuildTransaction assembles a transaction from req.
func BuildTransaction(req *TransactionRequest) (*wire.Transaction, error) {
	b := wire.NewBuilder(req.Version).WithLockTime(req.LockTime)
	for _, in := range req.Inputs {
		b.AddInputFrom(in.OutPoint.TxID, in.OutPoint.Index, in.SignatureScript, in.Sequence)
	}

	tx, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building transaction: %w", err)
	}
	return tx, nil
}
