package decode

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/types"
)

// Decode tries each event declared in meta, in order, against payload
// (after its leading selector byte) and returns the first whose
// argument list fully consumes the remainder. Every decoded field is
// a textual rendering, not yet normalised into typed JSON.
func Decode(payload []byte, meta *types.ContractMetadata) (*types.EventData, error) {
	if len(payload) == 0 {
		return nil, apperr.BadRequestf("empty event payload")
	}
	body := payload[1:] // byte 0 is the event selector; trial decoding ignores it

	for _, ev := range meta.Events {
		fields, remaining, err := tryDecodeEvent(body, ev, meta)
		if err != nil {
			continue
		}
		if len(remaining) != 0 {
			continue
		}
		return &types.EventData{EventName: ev.Label, Fields: fields}, nil
	}

	return nil, apperr.NotFoundf("payload matched no declared event for contract %s", meta.Address)
}

func tryDecodeEvent(body []byte, ev types.EventSpec, meta *types.ContractMetadata) (map[string]any, []byte, error) {
	cursor := body
	fields := make(map[string]any, len(ev.Args))
	for _, arg := range ev.Args {
		val, rest, err := decodeValue(cursor, arg.TypeID, meta)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", arg.Label, err)
		}
		fields[arg.Label] = val
		cursor = rest
	}
	return fields, cursor, nil
}

func decodeValue(cursor []byte, typeID uint32, meta *types.ContractMetadata) (string, []byte, error) {
	def, ok := meta.Types[typeID]
	if !ok {
		return "", nil, fmt.Errorf("type %d not found in registry", typeID)
	}

	switch def.Kind {
	case types.TypeKindPrimitive:
		return decodePrimitive(cursor, def.Primitive)
	case types.TypeKindArray:
		return decodeArray(cursor, def, meta)
	case types.TypeKindComposite:
		return decodeComposite(cursor, def, meta)
	case types.TypeKindVariant:
		return decodeVariant(cursor, def, meta)
	case types.TypeKindSequence:
		return decodeSequence(cursor, def, meta)
	case types.TypeKindTuple:
		return decodeTuple(cursor, def, meta)
	case types.TypeKindCompact:
		return decodeCompact(cursor)
	default:
		return "", nil, fmt.Errorf("unsupported type kind %q", def.Kind)
	}
}

func decodeArray(cursor []byte, def types.TypeDef, meta *types.ContractMetadata) (string, []byte, error) {
	n := int(def.ArrayLen)
	innerDef, ok := meta.Types[def.ArrayType]
	if ok && innerDef.Kind == types.TypeKindPrimitive && innerDef.Primitive == "u8" {
		if len(cursor) < n {
			return "", nil, fmt.Errorf("need %d bytes for byte array, have %d", n, len(cursor))
		}
		raw := cursor[:n]
		rest := cursor[n:]

		if n == 32 {
			if s, ok := printableASCII(raw); ok {
				return fmt.Sprintf("%q", s), rest, nil
			}
		}
		return "0x" + hex.EncodeToString(raw), rest, nil
	}

	cursor2 := cursor
	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		val, rest, err := decodeValue(cursor2, def.ArrayType, meta)
		if err != nil {
			return "", nil, err
		}
		values = append(values, val)
		cursor2 = rest
	}
	return "[" + strings.Join(values, ", ") + "]", cursor2, nil
}

func printableASCII(raw []byte) (string, bool) {
	trimmed := strings.TrimRight(string(raw), "\x00")
	if trimmed == "" {
		return "", false
	}
	for _, r := range trimmed {
		if r > 0x7e || (r < 0x20 && r != '\t') {
			return "", false
		}
	}
	return trimmed, true
}

func decodeComposite(cursor []byte, def types.TypeDef, meta *types.ContractMetadata) (string, []byte, error) {
	if len(def.Fields) == 1 {
		return decodeValue(cursor, def.Fields[0].Type, meta)
	}

	cur := cursor
	parts := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		val, rest, err := decodeValue(cur, f.Type, meta)
		if err != nil {
			return "", nil, err
		}
		if f.Name != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Name, val))
		} else {
			parts = append(parts, val)
		}
		cur = rest
	}
	return "{ " + strings.Join(parts, ", ") + " }", cur, nil
}

func decodeVariant(cursor []byte, def types.TypeDef, meta *types.ContractMetadata) (string, []byte, error) {
	if len(cursor) < 1 {
		return "", nil, fmt.Errorf("need 1 byte for variant discriminant")
	}
	discriminant := cursor[0]
	rest := cursor[1:]

	for _, vc := range def.Variants {
		if vc.Index != discriminant {
			continue
		}
		if len(vc.Fields) == 0 {
			return vc.Name, rest, nil
		}

		cur := rest
		values := make([]string, 0, len(vc.Fields))
		for _, f := range vc.Fields {
			val, next, err := decodeValue(cur, f.Type, meta)
			if err != nil {
				return "", nil, err
			}
			values = append(values, val)
			cur = next
		}
		return fmt.Sprintf("%s(%s)", vc.Name, strings.Join(values, ", ")), cur, nil
	}

	// Some authoring paths emit "indexed Option" without a real
	// discriminant byte: the byte we just read is actually the start
	// of the Some payload. Retry from the original, unconsumed cursor.
	if isOptionType(def) {
		for _, vc := range def.Variants {
			if vc.Name == "Some" && len(vc.Fields) > 0 {
				val, next, err := decodeValue(cursor, vc.Fields[0].Type, meta)
				if err == nil {
					return fmt.Sprintf("Some(%s)", val), next, nil
				}
			}
		}
	}

	return "", nil, fmt.Errorf("unknown variant discriminant: %d", discriminant)
}

func isOptionType(def types.TypeDef) bool {
	for _, p := range def.Path {
		if p == "Option" {
			return true
		}
	}
	return false
}

func decodeSequence(cursor []byte, def types.TypeDef, meta *types.ContractMetadata) (string, []byte, error) {
	length, cur, err := decodeCompactUint(cursor)
	if err != nil {
		return "", nil, fmt.Errorf("decode sequence length: %w", err)
	}

	values := make([]string, 0, length)
	for i := uint64(0); i < length; i++ {
		val, rest, err := decodeValue(cur, def.SequenceType, meta)
		if err != nil {
			return "", nil, err
		}
		values = append(values, val)
		cur = rest
	}
	return "Vec[" + strings.Join(values, ", ") + "]", cur, nil
}

func decodeTuple(cursor []byte, def types.TypeDef, meta *types.ContractMetadata) (string, []byte, error) {
	if len(def.TupleTypes) == 0 {
		return "()", cursor, nil
	}

	cur := cursor
	values := make([]string, 0, len(def.TupleTypes))
	for _, t := range def.TupleTypes {
		val, rest, err := decodeValue(cur, t, meta)
		if err != nil {
			return "", nil, err
		}
		values = append(values, val)
		cur = rest
	}
	return "(" + strings.Join(values, ", ") + ")", cur, nil
}

func decodeCompact(cursor []byte) (string, []byte, error) {
	v, rest, err := decodeCompactUint(cursor)
	if err != nil {
		return "", nil, fmt.Errorf("decode compact: %w", err)
	}
	return fmt.Sprintf("%d", v), rest, nil
}
