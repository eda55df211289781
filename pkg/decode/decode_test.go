package decode

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggr-io/triggr/pkg/types"
)

func u128LE(v uint64) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[:8], v)
	return buf
}

func transferMetadata() *types.ContractMetadata {
	return &types.ContractMetadata{
		Address: "0xabc",
		Events: []types.EventSpec{
			{
				Label: "Transfer",
				Args: []types.EventArg{
					{Label: "from", TypeID: 1},
					{Label: "amount", TypeID: 3},
				},
			},
		},
		Types: map[uint32]types.TypeDef{
			1: {ID: 1, Kind: types.TypeKindComposite, Fields: []types.CompositeField{{Type: 2}}},
			2: {ID: 2, Kind: types.TypeKindArray, ArrayLen: 32, ArrayType: 10},
			3: {ID: 3, Kind: types.TypeKindPrimitive, Primitive: "u128"},
			10: {ID: 10, Kind: types.TypeKindPrimitive, Primitive: "u8"},
		},
	}
}

func TestDecodeTransferEvent(t *testing.T) {
	meta := transferMetadata()

	addr := make([]byte, 32)
	for i := range addr {
		addr[i] = byte(i + 1)
	}

	payload := append([]byte{0x00}, addr...)
	payload = append(payload, u128LE(1_000_000)...)

	ev, err := Decode(payload, meta)
	require.NoError(t, err)
	assert.Equal(t, "Transfer", ev.EventName)
	assert.Equal(t, "1000000", ev.Fields["amount"])
	assert.Contains(t, ev.Fields["from"], "0x")
}

func TestDecodeRejectsPartialConsume(t *testing.T) {
	meta := transferMetadata()

	addr := make([]byte, 32)
	payload := append([]byte{0x00}, addr...)
	payload = append(payload, u128LE(1)...)
	payload = append(payload, 0xff) // one extra trailing byte

	_, err := Decode(payload, meta)
	assert.Error(t, err)
}

func TestDecodeEmptyPayloadFails(t *testing.T) {
	meta := transferMetadata()
	_, err := Decode(nil, meta)
	assert.Error(t, err)
}

func TestDecodeTriesEventsInDeclarationOrder(t *testing.T) {
	meta := &types.ContractMetadata{
		Address: "0xabc",
		Events: []types.EventSpec{
			{Label: "WrongShape", Args: []types.EventArg{{Label: "x", TypeID: 99}}},
			{Label: "Counted", Args: []types.EventArg{{Label: "count", TypeID: 3}}},
		},
		Types: map[uint32]types.TypeDef{
			3: {ID: 3, Kind: types.TypeKindPrimitive, Primitive: "u32"},
		},
	}

	payload := append([]byte{0x01}, []byte{42, 0, 0, 0}...)
	ev, err := Decode(payload, meta)
	require.NoError(t, err)
	assert.Equal(t, "Counted", ev.EventName)
	assert.Equal(t, "42", ev.Fields["count"])
}

func TestDecodeByteArray32AllPrintableRendersAsString(t *testing.T) {
	meta := &types.ContractMetadata{
		Types: map[uint32]types.TypeDef{
			2:  {ID: 2, Kind: types.TypeKindArray, ArrayLen: 32, ArrayType: 10},
			10: {ID: 10, Kind: types.TypeKindPrimitive, Primitive: "u8"},
		},
	}

	raw := make([]byte, 32)
	copy(raw, "hello-world")

	val, rest, err := decodeValue(raw, 2, meta)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, `"hello-world"`, val)
}

func TestDecodeByteArray32NonPrintableRendersAsHex(t *testing.T) {
	meta := &types.ContractMetadata{
		Types: map[uint32]types.TypeDef{
			2:  {ID: 2, Kind: types.TypeKindArray, ArrayLen: 32, ArrayType: 10},
			10: {ID: 10, Kind: types.TypeKindPrimitive, Primitive: "u8"},
		},
	}

	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = 0xAA
	}

	val, rest, err := decodeValue(raw, 2, meta)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "0x"+stringRepeat("aa", 32), val)
}

func stringRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func optionMetadata() *types.ContractMetadata {
	return &types.ContractMetadata{
		Types: map[uint32]types.TypeDef{
			4: {
				ID:   4,
				Kind: types.TypeKindVariant,
				Path: []string{"Option"},
				Variants: []types.VariantCase{
					{Name: "None", Index: 0},
					{Name: "Some", Index: 1, Fields: []types.CompositeField{{Type: 3}}},
				},
			},
			3: {ID: 3, Kind: types.TypeKindPrimitive, Primitive: "u128"},
		},
	}
}

func TestDecodeVariantWithDiscriminant(t *testing.T) {
	meta := optionMetadata()
	payload := append([]byte{1}, u128LE(7)...)

	val, rest, err := decodeValue(payload, 4, meta)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "Some(7)", val)
}

func TestDecodeVariantNoneDiscriminant(t *testing.T) {
	meta := optionMetadata()
	payload := []byte{0}

	val, rest, err := decodeValue(payload, 4, meta)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "None", val)
}

func TestDecodeVariantIndexedOptionRetriesWithoutDiscriminant(t *testing.T) {
	meta := optionMetadata()

	// amount=1000's low byte is 0xE8 — matches neither None(0) nor Some(1),
	// forcing the no-discriminant retry path.
	payload := u128LE(1000)
	require.NotEqual(t, byte(0), payload[0])
	require.NotEqual(t, byte(1), payload[0])

	val, rest, err := decodeValue(payload, 4, meta)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "Some(1000)", val)
}

func TestDecodeSequence(t *testing.T) {
	meta := &types.ContractMetadata{
		Types: map[uint32]types.TypeDef{
			5: {ID: 5, Kind: types.TypeKindSequence, SequenceType: 3},
			3: {ID: 3, Kind: types.TypeKindPrimitive, Primitive: "u32"},
		},
	}

	// compact length 2, then two u32 little-endian values
	payload := []byte{2 << 2, 1, 0, 0, 0, 2, 0, 0, 0}

	val, rest, err := decodeValue(payload, 5, meta)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "Vec[1, 2]", val)
}

func TestDecodeTupleEmptyIsUnit(t *testing.T) {
	meta := &types.ContractMetadata{
		Types: map[uint32]types.TypeDef{
			6: {ID: 6, Kind: types.TypeKindTuple},
		},
	}

	val, rest, err := decodeValue([]byte{}, 6, meta)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "()", val)
}
