package decode

import (
	"fmt"
	"math/big"
)

// decodeUint reads an n-byte little-endian unsigned integer.
func decodeUint(cursor []byte, n int) (*big.Int, []byte, error) {
	if len(cursor) < n {
		return nil, nil, fmt.Errorf("need %d bytes for uint, have %d", n, len(cursor))
	}
	be := make([]byte, n)
	for i := 0; i < n; i++ {
		be[n-1-i] = cursor[i]
	}
	return new(big.Int).SetBytes(be), cursor[n:], nil
}

// decodeInt reads an n-byte little-endian two's-complement signed
// integer.
func decodeInt(cursor []byte, n int) (*big.Int, []byte, error) {
	u, rest, err := decodeUint(cursor, n)
	if err != nil {
		return nil, nil, err
	}
	bitLen := n * 8
	half := new(big.Int).Lsh(big.NewInt(1), uint(bitLen-1))
	if u.Cmp(half) >= 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
		u = new(big.Int).Sub(u, full)
	}
	return u, rest, nil
}

// decodeCompactUint reads a SCALE compact-encoded unsigned integer.
func decodeCompactUint(cursor []byte) (uint64, []byte, error) {
	if len(cursor) < 1 {
		return 0, nil, fmt.Errorf("need at least 1 byte for compact length")
	}

	mode := cursor[0] & 0b11
	switch mode {
	case 0b00:
		return uint64(cursor[0] >> 2), cursor[1:], nil
	case 0b01:
		if len(cursor) < 2 {
			return 0, nil, fmt.Errorf("need 2 bytes for two-byte compact mode")
		}
		v := uint16(cursor[0]) | uint16(cursor[1])<<8
		return uint64(v >> 2), cursor[2:], nil
	case 0b10:
		if len(cursor) < 4 {
			return 0, nil, fmt.Errorf("need 4 bytes for four-byte compact mode")
		}
		v := uint32(cursor[0]) | uint32(cursor[1])<<8 | uint32(cursor[2])<<16 | uint32(cursor[3])<<24
		return uint64(v >> 2), cursor[4:], nil
	default: // 0b11, big-integer mode
		length := int(cursor[0]>>2) + 4
		if len(cursor) < 1+length {
			return 0, nil, fmt.Errorf("need %d bytes for big-integer compact mode", 1+length)
		}
		big, rest, err := decodeUint(cursor[1:1+length], length)
		if err != nil {
			return 0, nil, err
		}
		_ = rest
		return big.Uint64(), cursor[1+length:], nil
	}
}
