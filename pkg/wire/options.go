package wire

// DecodeOptions enables optional hardening checks on top of the default
// decoding rules. The zero value applies none of them, which matches the
// plain Decode functions exactly.
type DecodeOptions struct {
	// RequireCanonical rejects CompactSize values that are not encoded in
	// their minimal width.
	RequireCanonical bool

	// MaxInputs, when non-zero, rejects a transaction whose declared input
	// count exceeds it before any input is decoded.
	MaxInputs uint64
}
