// Package wire implements the Bitcoin wire encoding for transaction inputs.
//
// The package covers the subset of the transaction format needed to carry
// inputs: CompactSize variable-length integers, transaction IDs, previous
// output references (outpoints), scripts, inputs and the transaction
// envelope (version, inputs, lock time).
//
// Encoding is compositional: every type appends its fields in wire order.
// Decoding is a single forward pass over a byte slice. Every Decode function
// consumes a prefix of its input and reports how many bytes it used, so the
// caller can continue parsing right after it:
//
//	in, n, err := wire.DecodeTxIn(buf[cursor:])
//	if err != nil {
//		return err
//	}
//	cursor += n
//
// All integers on the wire are little-endian. Values are immutable once
// constructed and every function is safe for concurrent use.
package wire

import (
	"encoding/binary"
	"math"
)

// CompactSize markers. A first byte below compactSize16 is the value itself.
const (
	compactSize16 = 0xfd
	compactSize32 = 0xfe
	compactSize64 = 0xff
)

// MaxCompactSizeLen is the largest number of bytes a CompactSize occupies.
const MaxCompactSizeLen = 9

// littleEndian is a convenience alias since binary.LittleEndian is long.
var littleEndian = binary.LittleEndian

// CompactSize is Bitcoin's variable-length unsigned integer.
//
// Encoded widths:
//
//	0..=252                 1 byte, the value itself
//	253..=0xffff            0xfd || u16le
//	0x10000..=0xffffffff    0xfe || u32le
//	above                   0xff || u64le
type CompactSize struct {
	Value uint64 `json:"value" yaml:"value"`
}

// NewCompactSize returns a CompactSize holding v.
func NewCompactSize(v uint64) CompactSize {
	return CompactSize{Value: v}
}

// Bytes returns the minimal encoding of c.
func (c CompactSize) Bytes() []byte {
	return EncodeCompactSize(c.Value)
}

// CompactSizeLen returns the number of bytes EncodeCompactSize(v) produces.
func CompactSizeLen(v uint64) int {
	switch {
	case v < compactSize16:
		return 1
	case v <= math.MaxUint16:
		return 3
	case v <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// EncodeCompactSize returns the minimal CompactSize encoding of v.
func EncodeCompactSize(v uint64) []byte {
	return appendCompactSize(make([]byte, 0, CompactSizeLen(v)), v)
}

func appendCompactSize(dst []byte, v uint64) []byte {
	switch {
	case v < compactSize16:
		return append(dst, uint8(v))
	case v <= math.MaxUint16:
		dst = append(dst, compactSize16)
		return littleEndian.AppendUint16(dst, uint16(v))
	case v <= math.MaxUint32:
		dst = append(dst, compactSize32)
		return littleEndian.AppendUint32(dst, uint32(v))
	default:
		dst = append(dst, compactSize64)
		return littleEndian.AppendUint64(dst, v)
	}
}

// DecodeCompactSize reads a CompactSize from the front of b and returns it
// together with the number of bytes consumed (1, 3, 5 or 9).
//
// Only truncation is checked. A value written with a wider marker than
// necessary (for example 5 as 0xff followed by eight bytes) is accepted, so
// re-encoding a decoded value may be shorter than the input. Use
// DecodeCompactSizeWithOptions with RequireCanonical to reject such input.
func DecodeCompactSize(b []byte) (CompactSize, int, error) {
	if len(b) == 0 {
		return CompactSize{}, 0, ErrInsufficientBytes
	}

	switch discriminant := b[0]; discriminant {
	case compactSize16:
		if len(b) < 3 {
			return CompactSize{}, 0, ErrInsufficientBytes
		}
		return NewCompactSize(uint64(littleEndian.Uint16(b[1:3]))), 3, nil

	case compactSize32:
		if len(b) < 5 {
			return CompactSize{}, 0, ErrInsufficientBytes
		}
		return NewCompactSize(uint64(littleEndian.Uint32(b[1:5]))), 5, nil

	case compactSize64:
		if len(b) < 9 {
			return CompactSize{}, 0, ErrInsufficientBytes
		}
		return NewCompactSize(littleEndian.Uint64(b[1:9])), 9, nil

	default:
		return NewCompactSize(uint64(discriminant)), 1, nil
	}
}

// DecodeCompactSizeWithOptions is DecodeCompactSize with the hardening
// checks in opts applied.
func DecodeCompactSizeWithOptions(b []byte, opts DecodeOptions) (CompactSize, int, error) {
	c, n, err := DecodeCompactSize(b)
	if err != nil {
		return CompactSize{}, 0, err
	}
	if opts.RequireCanonical && CompactSizeLen(c.Value) != n {
		return CompactSize{}, 0, invalidFormatf(
			"non-canonical compact size %x - %d bytes used for value %d",
			b[:n], n, c.Value)
	}
	return c, n, nil
}
