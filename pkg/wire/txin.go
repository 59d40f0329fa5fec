package wire

// MaxSequence is the sequence number of a final input.
const MaxSequence uint32 = 0xffffffff

// sequenceSize is the width of the sequence field.
const sequenceSize = 4

// TxIn is a transaction input: the output it spends, the signature script
// that unlocks it and a sequence number.
type TxIn struct {
	PreviousOutPoint OutPoint `json:"previous_output" yaml:"previous_output"`
	SignatureScript  Script   `json:"script_sig"      yaml:"script_sig"`
	Sequence         uint32   `json:"sequence"        yaml:"sequence"`
}

// NewTxIn returns an input spending prevOut.
func NewTxIn(prevOut OutPoint, signatureScript Script, sequence uint32) TxIn {
	return TxIn{
		PreviousOutPoint: prevOut,
		SignatureScript:  signatureScript,
		Sequence:         sequence,
	}
}

// SerializeSize returns the number of bytes Bytes produces.
func (t TxIn) SerializeSize() int {
	return OutPointSize + t.SignatureScript.SerializeSize() + sequenceSize
}

// Bytes returns outpoint || script || u32le sequence.
func (t TxIn) Bytes() []byte {
	return t.appendTo(make([]byte, 0, t.SerializeSize()))
}

func (t TxIn) appendTo(dst []byte) []byte {
	dst = t.PreviousOutPoint.appendTo(dst)
	dst = t.SignatureScript.appendTo(dst)
	return littleEndian.AppendUint32(dst, t.Sequence)
}

// DecodeTxIn reads an input from the front of b and returns it with the
// number of bytes consumed.
func DecodeTxIn(b []byte) (TxIn, int, error) {
	return decodeTxIn(b, DecodeOptions{})
}

func decodeTxIn(b []byte, opts DecodeOptions) (TxIn, int, error) {
	prevOut, cursor, err := DecodeOutPoint(b)
	if err != nil {
		return TxIn{}, 0, err
	}

	script, n, err := decodeScript(b[cursor:], opts)
	if err != nil {
		return TxIn{}, 0, err
	}
	cursor += n

	if len(b)-cursor < sequenceSize {
		return TxIn{}, 0, ErrInsufficientBytes
	}
	sequence := littleEndian.Uint32(b[cursor : cursor+sequenceSize])
	cursor += sequenceSize

	return NewTxIn(prevOut, script, sequence), cursor, nil
}
