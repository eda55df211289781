package decode

import "fmt"

func decodePrimitive(cursor []byte, name string) (string, []byte, error) {
	switch name {
	case "u8":
		return decodeUintPrimitive(cursor, 1)
	case "u16":
		return decodeUintPrimitive(cursor, 2)
	case "u32":
		return decodeUintPrimitive(cursor, 4)
	case "u64":
		return decodeUintPrimitive(cursor, 8)
	case "u128":
		return decodeUintPrimitive(cursor, 16)
	case "i8":
		return decodeIntPrimitive(cursor, 1)
	case "i16":
		return decodeIntPrimitive(cursor, 2)
	case "i32":
		return decodeIntPrimitive(cursor, 4)
	case "i64":
		return decodeIntPrimitive(cursor, 8)
	case "i128":
		return decodeIntPrimitive(cursor, 16)
	case "bool":
		return decodeBool(cursor)
	case "str":
		return decodeStr(cursor)
	default:
		return "", nil, fmt.Errorf("unknown primitive type %q", name)
	}
}

func decodeUintPrimitive(cursor []byte, n int) (string, []byte, error) {
	v, rest, err := decodeUint(cursor, n)
	if err != nil {
		return "", nil, fmt.Errorf("decode u%d: %w", n*8, err)
	}
	return v.String(), rest, nil
}

func decodeIntPrimitive(cursor []byte, n int) (string, []byte, error) {
	v, rest, err := decodeInt(cursor, n)
	if err != nil {
		return "", nil, fmt.Errorf("decode i%d: %w", n*8, err)
	}
	return v.String(), rest, nil
}

func decodeBool(cursor []byte) (string, []byte, error) {
	if len(cursor) < 1 {
		return "", nil, fmt.Errorf("need 1 byte for bool")
	}
	switch cursor[0] {
	case 0:
		return "false", cursor[1:], nil
	case 1:
		return "true", cursor[1:], nil
	default:
		return "", nil, fmt.Errorf("invalid bool byte 0x%02x", cursor[0])
	}
}

func decodeStr(cursor []byte) (string, []byte, error) {
	length, rest, err := decodeCompactUint(cursor)
	if err != nil {
		return "", nil, fmt.Errorf("decode string length: %w", err)
	}
	if uint64(len(rest)) < length {
		return "", nil, fmt.Errorf("need %d bytes for string, have %d", length, len(rest))
	}
	s := string(rest[:length])
	return fmt.Sprintf("%q", s), rest[length:], nil
}
