package wire

import (
	"bytes"
	"encoding/hex"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Script is a length-prefixed opaque byte string, such as a signature
// script. Its contents are never interpreted by this package.
type Script struct {
	data []byte
}

// NewScript returns a Script holding a copy of b. Empty input yields the
// zero Script.
func NewScript(b []byte) Script {
	if len(b) == 0 {
		return Script{}
	}
	return Script{data: bytes.Clone(b)}
}

// Data returns a copy of the raw script bytes.
func (s Script) Data() []byte {
	return bytes.Clone(s.data)
}

// Len returns the number of raw script bytes.
func (s Script) Len() int {
	return len(s.data)
}

// Equal reports whether s and other hold the same bytes. A nil and an empty
// script are equal.
func (s Script) Equal(other Script) bool {
	return bytes.Equal(s.data, other.data)
}

// SerializeSize returns the encoded size of s including its length prefix.
func (s Script) SerializeSize() int {
	return CompactSizeLen(uint64(len(s.data))) + len(s.data)
}

// Bytes returns CompactSize(len) followed by the raw script bytes.
func (s Script) Bytes() []byte {
	return s.appendTo(make([]byte, 0, s.SerializeSize()))
}

func (s Script) appendTo(dst []byte) []byte {
	dst = appendCompactSize(dst, uint64(len(s.data)))
	return append(dst, s.data...)
}

// DecodeScript reads a length-prefixed script from the front of b.
func DecodeScript(b []byte) (Script, int, error) {
	return decodeScript(b, DecodeOptions{})
}

func decodeScript(b []byte, opts DecodeOptions) (Script, int, error) {
	length, n, err := DecodeCompactSizeWithOptions(b, opts)
	if err != nil {
		return Script{}, 0, err
	}
	// Compare against what is left instead of n+length, which can overflow
	// for declared lengths near 2^64.
	if length.Value > uint64(len(b)-n) {
		return Script{}, 0, ErrInsufficientBytes
	}
	end := n + int(length.Value)
	return NewScript(b[n:end]), end, nil
}

// String returns the lowercase hex of the raw script bytes.
func (s Script) String() string {
	return hex.EncodeToString(s.data)
}

// scriptFields is the structured form of a Script: {"bytes": [n, ...]}.
// Elements are wider than a byte so encoders emit numbers, not base64.
type scriptFields struct {
	Bytes []uint16 `json:"bytes" yaml:"bytes,flow"`
}

func (s Script) fields() scriptFields {
	f := scriptFields{Bytes: make([]uint16, len(s.data))}
	for i, b := range s.data {
		f.Bytes[i] = uint16(b)
	}
	return f
}

func scriptFromFields(f scriptFields) (Script, error) {
	b := make([]byte, len(f.Bytes))
	for i, v := range f.Bytes {
		if v > 0xff {
			return Script{}, invalidFormatf("script byte %d out of range: %d", i, v)
		}
		b[i] = byte(v)
	}
	return NewScript(b), nil
}

// MarshalJSON renders s as {"bytes": [n, ...]}.
func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.fields())
}

// UnmarshalJSON implements json.Unmarshaler. Unknown fields and byte values
// above 255 fail with ErrInvalidFormat.
func (s *Script) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var f scriptFields
	if err := dec.Decode(&f); err != nil {
		return invalidFormatf("script: %v", err)
	}
	parsed, err := scriptFromFields(f)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML renders s as a mapping with a flow sequence of byte values.
func (s Script) MarshalYAML() (interface{}, error) {
	return s.fields(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Script) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			if key := value.Content[i].Value; key != "bytes" {
				return invalidFormatf("script: line %d: unknown field %q",
					value.Content[i].Line, key)
			}
		}
	}

	var f scriptFields
	if err := value.Decode(&f); err != nil {
		return invalidFormatf("script: %v", err)
	}
	parsed, err := scriptFromFields(f)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
