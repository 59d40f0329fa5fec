package wire

import (
	"fmt"
	"strings"
)

const (
	versionSize  = 4
	lockTimeSize = 4

	// minTxInSize is the smallest possible encoded input: an outpoint, an
	// empty script (one length byte) and a sequence number.
	minTxInSize = OutPointSize + 1 + sequenceSize
)

// Transaction is the transaction envelope: a version, an ordered list of
// inputs and a lock time. Outputs and witness data are not modelled.
type Transaction struct {
	Version  uint32 `json:"version"   yaml:"version"`
	Inputs   []TxIn `json:"inputs"    yaml:"inputs"`
	LockTime uint32 `json:"lock_time" yaml:"lock_time"`
}

// NewTransaction returns a transaction holding a copy of inputs.
func NewTransaction(version uint32, inputs []TxIn, lockTime uint32) *Transaction {
	tx := &Transaction{Version: version, LockTime: lockTime}
	if len(inputs) > 0 {
		tx.Inputs = append(make([]TxIn, 0, len(inputs)), inputs...)
	}
	return tx
}

// SerializeSize returns the number of bytes Bytes produces.
func (tx *Transaction) SerializeSize() int {
	n := versionSize + CompactSizeLen(uint64(len(tx.Inputs))) + lockTimeSize
	for i := range tx.Inputs {
		n += tx.Inputs[i].SerializeSize()
	}
	return n
}

// Bytes returns the wire encoding of tx:
//
//	u32le version || CompactSize(input count) || inputs... || u32le lock time
func (tx *Transaction) Bytes() []byte {
	buf := make([]byte, 0, tx.SerializeSize())
	buf = littleEndian.AppendUint32(buf, tx.Version)
	buf = appendCompactSize(buf, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		buf = tx.Inputs[i].appendTo(buf)
	}
	return littleEndian.AppendUint32(buf, tx.LockTime)
}

// DecodeTransaction reads a transaction from the front of b and returns it
// with the number of bytes consumed. Bytes after the lock time are left for
// the caller.
//
// The declared input count is not checked against the buffer up front. Each
// input is bounds-checked as it is decoded, so an oversized count fails on
// the first input that does not fit. No partial transaction is returned.
func DecodeTransaction(b []byte) (*Transaction, int, error) {
	return DecodeTransactionWithOptions(b, DecodeOptions{})
}

// DecodeTransactionWithOptions is DecodeTransaction with the hardening
// checks in opts applied.
func DecodeTransactionWithOptions(b []byte, opts DecodeOptions) (*Transaction, int, error) {
	if len(b) < versionSize {
		return nil, 0, ErrInsufficientBytes
	}
	version := littleEndian.Uint32(b[:versionSize])
	cursor := versionSize

	count, n, err := DecodeCompactSizeWithOptions(b[cursor:], opts)
	if err != nil {
		return nil, 0, err
	}
	cursor += n

	if opts.MaxInputs > 0 && count.Value > opts.MaxInputs {
		return nil, 0, invalidFormatf("too many inputs - %d, max %d",
			count.Value, opts.MaxInputs)
	}

	// Never size the slice from the declared count alone. The remaining
	// buffer bounds how many inputs can actually be present.
	capacity := uint64(len(b)-cursor) / minTxInSize
	if count.Value < capacity {
		capacity = count.Value
	}
	var inputs []TxIn
	if capacity > 0 {
		inputs = make([]TxIn, 0, capacity)
	}
	for i := uint64(0); i < count.Value; i++ {
		in, used, err := decodeTxIn(b[cursor:], opts)
		if err != nil {
			return nil, 0, err
		}
		inputs = append(inputs, in)
		cursor += used
	}

	if len(b)-cursor < lockTimeSize {
		return nil, 0, ErrInsufficientBytes
	}
	lockTime := littleEndian.Uint32(b[cursor : cursor+lockTimeSize])
	cursor += lockTimeSize

	return &Transaction{Version: version, Inputs: inputs, LockTime: lockTime}, cursor, nil
}

// String returns a short human-readable summary of tx. Script contents are
// reported by length only.
func (tx *Transaction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version: %d\n", tx.Version)
	for _, in := range tx.Inputs {
		fmt.Fprintf(&sb, "Previous Output Vout: %d\n", in.PreviousOutPoint.Index)
		fmt.Fprintf(&sb, "ScriptSig: %d bytes\n", in.SignatureScript.Len())
	}
	fmt.Fprintf(&sb, "Lock Time: %d\n", tx.LockTime)
	return sb.String()
}
