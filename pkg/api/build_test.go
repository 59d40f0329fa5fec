package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/btctx/pkg/wire"
)

func TestParseInputSpec(t *testing.T) {
	txid := strings.Repeat("11", 32)

	spec, err := ParseInputSpec(txid + ":3")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), spec.OutPoint.Index)
	assert.Nil(t, spec.Sequence)
	assert.Nil(t, spec.SignatureScript)

	spec, err = ParseInputSpec(txid + ":0:0xfffffffd")
	require.NoError(t, err)
	require.NotNil(t, spec.Sequence)
	assert.Equal(t, uint32(0xfffffffd), *spec.Sequence)

	spec, err = ParseInputSpec(txid + ":1::51ae")
	require.NoError(t, err)
	assert.Nil(t, spec.Sequence)
	assert.Equal(t, []byte{0x51, 0xae}, spec.SignatureScript)
}

func TestParseInputSpecErrors(t *testing.T) {
	txid := strings.Repeat("11", 32)

	for _, in := range []string{
		txid,
		"nothex:0",
		txid + ":x",
		txid + ":0:4294967296",
		txid + ":0:1:5",
	} {
		_, err := ParseInputSpec(in)
		require.ErrorIs(t, err, wire.ErrInvalidFormat, in)
	}
}

func TestBuildTransaction(t *testing.T) {
	txid := strings.Repeat("00", 32)
	in, err := ParseInputSpec(txid + ":0")
	require.NoError(t, err)

	tx, err := BuildTransaction(&TransactionRequest{
		Version: 1,
		Inputs:  []InputSpec{in},
	})
	require.NoError(t, err)

	// Version 1, one input from the zero txid, empty script, final sequence.
	want := "01000000" + "01" + strings.Repeat("00", 36) + "00" + "ffffffff" + "00000000"
	assert.Equal(t, want, EncodeHex(tx))

	_, err = BuildTransaction(&TransactionRequest{Version: 1, Inputs: []InputSpec{in, in}})
	require.ErrorIs(t, err, wire.ErrInvalidFormat)
}
