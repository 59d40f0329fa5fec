package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/suffix-labs/btctx/pkg/wire"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// loadFixture reads a file from testdata.
func loadFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "Failed to read fixture %s", name)
	return data
}

func fixtureHex(t *testing.T) string {
	t.Helper()
	return strings.TrimSpace(string(loadFixture(t, "two_inputs.hex")))
}

// TestFixturesAgree checks that the JSON, YAML and hex fixtures describe the
// same transaction.
func TestFixturesAgree(t *testing.T) {
	fromJSON, err := Unmarshal(loadFixture(t, "two_inputs.json"), FormatJSON)
	require.NoError(t, err)

	fromYAML, err := Unmarshal(loadFixture(t, "two_inputs.yaml"), FormatYAML)
	require.NoError(t, err)

	fromHex, n, err := DecodeHex(fixtureHex(t), wire.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 163, n)

	assert.Equal(t, fromHex, fromJSON)
	assert.Equal(t, fromHex, fromYAML)
	assert.Equal(t, fixtureHex(t), EncodeHex(fromJSON))

	require.Len(t, fromHex.Inputs, 2)
	assert.Equal(t, 72, fromHex.Inputs[0].SignatureScript.Len())
	assert.Equal(t, uint32(840000), fromHex.LockTime)
}

func TestMarshalRoundTrip(t *testing.T) {
	tx, _, err := DecodeHex(fixtureHex(t), wire.DecodeOptions{})
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			out, err := Marshal(tx, format)
			require.NoError(t, err)
			assert.Equal(t, format, DetectFormat(out))

			back, err := Unmarshal(out, format)
			require.NoError(t, err)
			assert.Equal(t, tx, back)
		})
	}
}

func TestMarshalJSONFieldNames(t *testing.T) {
	tx := wire.NewTransaction(1, []wire.TxIn{
		wire.NewTxIn(wire.NewOutPoint([32]byte{0xab}, 5), wire.NewScript([]byte{0x51}), wire.MaxSequence),
	}, 0)

	out, err := Marshal(tx, FormatJSON)
	require.NoError(t, err)

	s := string(out)
	for _, field := range []string{`"version"`, `"inputs"`, `"lock_time"`, `"previous_output"`,
		`"txid"`, `"vout"`, `"script_sig"`, `"sequence"`} {
		assert.Contains(t, s, field)
	}
	assert.Contains(t, s, `"ab00000000000000000000000000000000000000000000000000000000000000"`)
	assert.Regexp(t, `"script_sig":\s*\{\s*"bytes":\s*\[\s*81\s*\]\s*\}`, s)
}

// TestUnmarshalByteArrayScript checks documents that carry scripts as
// field-named byte arrays, the shape Marshal produces.
func TestUnmarshalByteArrayScript(t *testing.T) {
	doc := `{"version":1,"inputs":[{"previous_output":{"txid":"` + strings.Repeat("00", 32) +
		`","vout":0},"script_sig":{"bytes":[1,2,3]},"sequence":4294967295}],"lock_time":0}`

	tx, err := Unmarshal([]byte(doc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, tx.Inputs, 1)
	assert.Equal(t, []byte{1, 2, 3}, tx.Inputs[0].SignatureScript.Data())

	out, err := Marshal(tx, FormatJSON)
	require.NoError(t, err)
	assert.Regexp(t, `"script_sig":\s*\{\s*"bytes":\s*\[\s*1,\s*2,\s*3\s*\]\s*\}`, string(out))

	y, err := Marshal(tx, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(y), "bytes: [1, 2, 3]")
}

func TestMarshalNoInputs(t *testing.T) {
	tx := wire.NewTransaction(1, nil, 0)

	out, err := Marshal(tx, FormatJSON)
	require.NoError(t, err)
	assert.Regexp(t, `"inputs":\s*\[\s*\]`, string(out))
	assert.NotContains(t, string(out), "null")
	assert.Nil(t, tx.Inputs, "marshalling must not modify tx")

	back, err := Unmarshal(out, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, tx, back)

	y, err := Marshal(tx, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(y), "inputs: []")

	back, err = Unmarshal(y, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, tx, back)
}

func TestMarshalTextAndDump(t *testing.T) {
	tx, _, err := DecodeHex(fixtureHex(t), wire.DecodeOptions{})
	require.NoError(t, err)

	text, err := Marshal(tx, FormatText)
	require.NoError(t, err)
	assert.Equal(t, tx.String(), string(text))
	assert.NotContains(t, string(text), "4730440220", "display omits script contents")

	dump, err := Marshal(tx, FormatDump)
	require.NoError(t, err)
	assert.Contains(t, string(dump), "LockTime: (uint32) 840000")

	_, err = Marshal(tx, Format("xml"))
	require.Error(t, err)
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		kind   wire.ErrorKind
	}{
		{
			name:   "short txid",
			data:   `{"version":1,"inputs":[{"previous_output":{"txid":"abcd","vout":0},"script_sig":{"bytes":[]},"sequence":0}],"lock_time":0}`,
			format: FormatJSON,
			kind:   wire.KindInvalidFormat,
		},
		{
			name:   "63 char txid",
			data:   "version: 1\ninputs:\n  - previous_output:\n      txid: \"" + strings.Repeat("a", 63) + "\"\n      vout: 0\nlock_time: 0\n",
			format: FormatYAML,
			kind:   wire.KindInvalidFormat,
		},
		{
			name:   "script byte out of range",
			data:   `{"version":1,"inputs":[{"previous_output":{"txid":"` + strings.Repeat("00", 32) + `","vout":0},"script_sig":{"bytes":[256]},"sequence":0}],"lock_time":0}`,
			format: FormatJSON,
			kind:   wire.KindInvalidFormat,
		},
		{
			name:   "script as hex string",
			data:   `{"version":1,"inputs":[{"previous_output":{"txid":"` + strings.Repeat("00", 32) + `","vout":0},"script_sig":"51","sequence":0}],"lock_time":0}`,
			format: FormatJSON,
			kind:   wire.KindInvalidFormat,
		},
		{
			name:   "unknown script field",
			data:   "version: 1\ninputs:\n  - previous_output:\n      txid: \"" + strings.Repeat("00", 32) + "\"\n      vout: 0\n    script_sig:\n      hex: \"51\"\n    sequence: 0\nlock_time: 0\n",
			format: FormatYAML,
			kind:   wire.KindInvalidFormat,
		},
		{
			name:   "unknown field",
			data:   `{"version":1,"outputs":[],"lock_time":0}`,
			format: FormatJSON,
			kind:   wire.KindInvalidFormat,
		},
		{
			name:   "text is marshal only",
			data:   "Version: 1\n",
			format: FormatText,
			kind:   wire.KindUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.data), tc.format)
			require.Error(t, err)
			assert.Equal(t, tc.kind, wire.Kind(err), "error: %v", err)
		})
	}
}

func TestDecodeHex(t *testing.T) {
	hexStr := fixtureHex(t)

	// Whitespace and 0x prefix are tolerated.
	spaced := "0x" + hexStr[:40] + "\n  " + hexStr[40:] + "\n"
	tx, n, err := DecodeHex(spaced, wire.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 163, n)
	assert.Len(t, tx.Inputs, 2)

	// Trailing bytes are reported, not rejected.
	withTrailer := hexStr + "cafe"
	_, n, err = DecodeHex(withTrailer, wire.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 163, n)

	raw, err := ParseHex(withTrailer)
	require.NoError(t, err)
	_, n, err = Decode(raw, wire.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, len(raw)-n)

	_, _, err = DecodeHex(hexStr[:len(hexStr)-2], wire.DecodeOptions{})
	require.ErrorIs(t, err, wire.ErrInsufficientBytes)

	_, _, err = DecodeHex("0g", wire.DecodeOptions{})
	require.ErrorIs(t, err, wire.ErrInvalidFormat)

	_, _, err = DecodeHex(hexStr, wire.DecodeOptions{MaxInputs: 1})
	require.ErrorIs(t, err, wire.ErrInvalidFormat)

	_, _, err = DecodeHex("", wire.DecodeOptions{})
	require.ErrorIs(t, err, wire.ErrInsufficientBytes)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"json": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML,
		"yml": FormatYAML, " text ": FormatText, "dump": FormatDump,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	require.Error(t, err)
}
