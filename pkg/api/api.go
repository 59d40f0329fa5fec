// Package api provides the high-level conversions used by the btctx CLI.
//
// The wire package works on raw bytes. This package adds the text
// boundaries around it:
//
//  1. DecodeHex / EncodeHex - hex strings to and from transactions
//  2. Marshal / Unmarshal - structured JSON and YAML documents
//  3. BuildTransaction - assemble a transaction from CLI-style input specs
//
// The structured forms are for interchange (fixtures, logs, APIs) only and
// are never the wire format.
package api

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/davecgh/go-spew/spew"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/suffix-labs/btctx/pkg/wire"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects a structured representation.
type Format string

const (
	FormatJSON Format = "json" // field-named JSON document
	FormatYAML Format = "yaml" // field-named YAML document
	FormatText Format = "text" // short display summary (marshal only)
	FormatDump Format = "dump" // go-spew deep dump (marshal only)
)

// ParseFormat returns the Format named by s. Matching is case-insensitive
// and "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text":
		return FormatText, nil
	case "dump":
		return FormatDump, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml, text or dump)", s)
}

// ============================================================================
// Hex
// ============================================================================

// DecodeHex decodes a hex-encoded transaction.
//
// Whitespace anywhere in s and a leading "0x" are ignored. Bytes after the
// end of the transaction are not an error; the returned count tells the
// caller how many bytes the transaction used.
//
// Parameters:
//   - s: hex string
//   - opts: hardening options passed to the wire decoder
//
// Returns:
//   - the decoded transaction
//   - the number of bytes consumed
//   - an error wrapping a wire error kind on failure
func DecodeHex(s string, opts wire.DecodeOptions) (*wire.Transaction, int, error) {
	raw, err := ParseHex(s)
	if err != nil {
		return nil, 0, err
	}
	return Decode(raw, opts)
}

// Decode decodes a transaction from the front of raw. Callers that need
// the trailing byte count compare the consumed count with len(raw).
func Decode(raw []byte, opts wire.DecodeOptions) (*wire.Transaction, int, error) {
	tx, n, err := wire.DecodeTransactionWithOptions(raw, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding transaction: %w", err)
	}
	return tx, n, nil
}

// EncodeHex returns the lowercase hex of the transaction's wire encoding.
func EncodeHex(tx *wire.Transaction) string {
	return hex.EncodeToString(tx.Bytes())
}

// ParseHex returns the bytes of the hex string s, ignoring whitespace and a
// leading "0x". Malformed hex fails with wire.ErrInvalidFormat.
func ParseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w: %v", wire.ErrInvalidFormat, err)
	}
	return raw, nil
}

// ============================================================================
// Structured documents
// ============================================================================

// Marshal renders tx in the given format.
func Marshal(tx *wire.Transaction, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(document(tx), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(out, '\n'), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(document(tx)); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil

	case FormatText:
		return []byte(tx.String()), nil

	case FormatDump:
		return []byte(spew.Sdump(tx)), nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

// document returns tx in the shape used for structured output. A
// transaction without inputs lists them as an empty sequence, not null.
func document(tx *wire.Transaction) *wire.Transaction {
	if tx.Inputs != nil {
		return tx
	}
	doc := *tx
	doc.Inputs = []wire.TxIn{}
	return &doc
}

// Unmarshal parses a JSON or YAML document into a transaction. Unknown
// fields are rejected. Any document that cannot be parsed, including one
// with a malformed txid or script, fails with wire.ErrInvalidFormat.
func Unmarshal(data []byte, format Format) (*wire.Transaction, error) {
	var tx wire.Transaction

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&tx); err != nil {
			return nil, fmt.Errorf("parsing json: %w: %v", wire.ErrInvalidFormat, err)
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&tx); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w: %v", wire.ErrInvalidFormat, err)
		}

	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}

	// Normalise through the constructor so documents compare equal to
	// decoded wire data.
	return wire.NewTransaction(tx.Version, tx.Inputs, tx.LockTime), nil
}

// DetectFormat guesses whether data is JSON or YAML from its first
// non-space byte.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}
