package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// OutPointSize is the encoded size of an OutPoint: txid (32) + index (4).
const OutPointSize = TxIDSize + 4

// OutPoint references an output of a previous transaction.
type OutPoint struct {
	TxID  TxID   `json:"txid" yaml:"txid"`
	Index uint32 `json:"vout" yaml:"vout"`
}

// NewOutPoint returns an OutPoint for output index of transaction txid.
func NewOutPoint(txid [TxIDSize]byte, index uint32) OutPoint {
	return OutPoint{TxID: NewTxID(txid), Index: index}
}

// Bytes returns the 36 byte encoding of o.
func (o OutPoint) Bytes() []byte {
	return o.appendTo(make([]byte, 0, OutPointSize))
}

func (o OutPoint) appendTo(dst []byte) []byte {
	dst = append(dst, o.TxID[:]...)
	return littleEndian.AppendUint32(dst, o.Index)
}

// DecodeOutPoint reads an OutPoint from the front of b. It always consumes
// OutPointSize bytes.
func DecodeOutPoint(b []byte) (OutPoint, int, error) {
	if len(b) < OutPointSize {
		return OutPoint{}, 0, ErrInsufficientBytes
	}
	var o OutPoint
	copy(o.TxID[:], b[:TxIDSize])
	o.Index = littleEndian.Uint32(b[TxIDSize:OutPointSize])
	return o, OutPointSize, nil
}

// String returns the outpoint as "<txid>:<index>".
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.Index)
}

// ParseOutPoint parses the "<txid>:<index>" form produced by String.
func ParseOutPoint(s string) (OutPoint, error) {
	txidStr, indexStr, ok := strings.Cut(s, ":")
	if !ok {
		return OutPoint{}, invalidFormatf("outpoint %q: missing ':' separator", s)
	}
	txid, err := NewTxIDFromHex(txidStr)
	if err != nil {
		return OutPoint{}, err
	}
	index, err := strconv.ParseUint(indexStr, 10, 32)
	if err != nil {
		return OutPoint{}, invalidFormatf("outpoint %q: bad index: %v", s, err)
	}
	return OutPoint{TxID: txid, Index: uint32(index)}, nil
}
