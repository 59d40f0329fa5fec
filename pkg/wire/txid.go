package wire

import (
	"encoding/hex"
)

// TxIDSize is the size in bytes of a transaction ID.
const TxIDSize = 32

// TxID identifies a transaction. On the wire it is 32 raw bytes with no
// prefix; the text form is the lowercase hex of those bytes in the same
// order.
type TxID [TxIDSize]byte

// NewTxID returns the TxID holding b.
func NewTxID(b [TxIDSize]byte) TxID {
	return TxID(b)
}

// TxIDFromBytes copies b into a TxID. It fails with ErrInvalidFormat unless
// b is exactly 32 bytes long.
func TxIDFromBytes(b []byte) (TxID, error) {
	var id TxID
	if len(b) != TxIDSize {
		return id, invalidFormatf("txid must be %d bytes, got %d", TxIDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// NewTxIDFromHex parses the 64 character hex form of a TxID.
func NewTxIDFromHex(s string) (TxID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return TxID{}, invalidFormatf("txid %q: %v", s, err)
	}
	return TxIDFromBytes(b)
}

// String returns the lowercase hex form of id.
func (id TxID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether every byte of id is zero.
func (id TxID) IsZero() bool {
	return id == TxID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id TxID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TxID) UnmarshalText(text []byte) error {
	parsed, err := NewTxIDFromHex(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
