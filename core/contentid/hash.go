package contentid

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Hash is a 128-bit XXH3 content hash.
type Hash struct {
	Hi uint64
	Lo uint64
}

// String renders the hash as 32 lowercase hex digits.
func (h Hash) String() string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], h.Hi)
	binary.BigEndian.PutUint64(b[8:], h.Lo)
	return hex.EncodeToString(b[:])
}

// Big returns the hash as an unsigned 128-bit integer.
func (h Hash) Big() *big.Int {
	n := new(big.Int).SetUint64(h.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(h.Lo))
}

// Equal reports whether two optional hashes are present and identical.
// A nil hash never equals anything, including another nil hash.
func Equal(a, b *Hash) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// ParseHash accepts either the 32-digit hex form produced by String or an
// unsigned decimal integer of any other length.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimSpace(s)
	if len(s) == 32 {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return Hash{}, fmt.Errorf("invalid hex hash %q: %w", s, err)
		}
		return Hash{
			Hi: binary.BigEndian.Uint64(raw[:8]),
			Lo: binary.BigEndian.Uint64(raw[8:]),
		}, nil
	}
	return parseDecimal(s)
}

// MarshalJSON writes the hash as an unquoted decimal integer so existing
// catalogs, which store the raw 128-bit value, stay readable.
func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte(h.Big().String()), nil
}

// UnmarshalJSON accepts a bare integer or a quoted decimal/hex string.
func (h *Hash) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		parsed, err := ParseHash(strings.Trim(string(data), `"`))
		if err != nil {
			return err
		}
		*h = parsed
		return nil
	}
	parsed, err := parseDecimal(string(data))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func parseDecimal(s string) (Hash, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.Cmp(maxUint128) > 0 {
		return Hash{}, fmt.Errorf("invalid 128-bit hash %q", s)
	}
	lo := new(big.Int).And(n, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(n, 64)
	return Hash{Hi: hi.Uint64(), Lo: lo.Uint64()}, nil
}
