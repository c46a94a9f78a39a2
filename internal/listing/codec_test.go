package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestDecodeStringList_JSONArray(t *testing.T) {
	assert.Equal(t, []string{"piscina"}, DecodeStringList(strPtr(`["piscina"]`)))
	assert.Equal(t, []string{"piscina", "jardin"}, DecodeStringList(strPtr(`["piscina","jardin"]`)))
}

func TestDecodeStringList_CommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"piscina", "jardin"}, DecodeStringList(strPtr("piscina, jardin")))
	assert.Equal(t, []string{"piscina", "jardin"}, DecodeStringList(strPtr(" piscina ,jardin ,, ")))
}

func TestDecodeStringList_PlainText(t *testing.T) {
	// A single legacy value without commas decodes to a one-element list.
	assert.Equal(t, []string{"piscina"}, DecodeStringList(strPtr("piscina")))
}

func TestDecodeStringList_MalformedJSONFallsBack(t *testing.T) {
	// A broken JSON payload is treated as comma-separated text, never an error.
	assert.Equal(t, []string{`["piscina"`}, DecodeStringList(strPtr(`["piscina"`)))
}

func TestDecodeStringList_NullAndEmpty(t *testing.T) {
	assert.Equal(t, []string{}, DecodeStringList(nil))
	assert.Equal(t, []string{}, DecodeStringList(strPtr("")))
	assert.Equal(t, []string{}, DecodeStringList(strPtr("   ")))
}

func TestEncodeStringList(t *testing.T) {
	assert.Nil(t, EncodeStringList(nil))
	assert.Nil(t, EncodeStringList([]string{}))

	encoded := EncodeStringList([]string{"piscina", "jardin"})
	require.NotNil(t, encoded)
	assert.JSONEq(t, `["piscina","jardin"]`, *encoded)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := []string{"piscina", "jardin", "garaje"}

	encoded := EncodeStringList(in)
	require.NotNil(t, encoded)
	assert.Equal(t, in, DecodeStringList(encoded))

	// Decoding then re-encoding a JSON-encoded value is stable.
	reEncoded := EncodeStringList(DecodeStringList(encoded))
	require.NotNil(t, reEncoded)
	assert.Equal(t, *encoded, *reEncoded)
}
