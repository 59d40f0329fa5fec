package wire

// Builder assembles a Transaction one input at a time.
//
// It follows the same staged pattern as the rest of the package's
// constructors: fields are set on the builder, and Build hands back an
// independent Transaction that later builder calls cannot affect.
type Builder struct {
	version  uint32
	inputs   []TxIn
	lockTime uint32
}

// NewBuilder returns a Builder for a transaction with the given version and
// a zero lock time.
func NewBuilder(version uint32) *Builder {
	return &Builder{version: version}
}

// WithLockTime sets the lock time. Values below 500000000 are block heights,
// larger values are UNIX timestamps; the codec treats both as plain u32.
func (b *Builder) WithLockTime(lockTime uint32) *Builder {
	b.lockTime = lockTime
	return b
}

// AddInput appends in to the input list.
func (b *Builder) AddInput(in TxIn) *Builder {
	b.inputs = append(b.inputs, in)
	return b
}

// AddInputFrom appends an input spending output index of txid.
//
// Parameters:
//   - txid: transaction holding the output being spent
//   - index: output index within that transaction
//   - signatureScript: raw unlocking script (may be nil)
//   - sequence: sequence number (nil uses MaxSequence)
func (b *Builder) AddInputFrom(
	txid TxID,
	index uint32,
	signatureScript []byte,
	sequence *uint32,
) *Builder {
	seq := MaxSequence
	if sequence != nil {
		seq = *sequence
	}
	return b.AddInput(NewTxIn(
		OutPoint{TxID: txid, Index: index},
		NewScript(signatureScript),
		seq,
	))
}

// Build returns the assembled transaction. It fails with ErrInvalidFormat
// if two inputs spend the same outpoint.
func (b *Builder) Build() (*Transaction, error) {
	seen := make(map[OutPoint]int, len(b.inputs))
	for i, in := range b.inputs {
		if j, ok := seen[in.PreviousOutPoint]; ok {
			return nil, invalidFormatf("inputs %d and %d both spend %s",
				j, i, in.PreviousOutPoint)
		}
		seen[in.PreviousOutPoint] = i
	}
	return NewTransaction(b.version, b.inputs, b.lockTime), nil
}
