package srp

import (
	"strings"

	"github.com/lanedirt/aliasvault-core/pkg/protocol"
)

// bytesToHex renders bytes as an uppercase hex string, per spec: every
// public SRP value is uppercase hex.
func bytesToHex(b []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0f]
	}
	return string(out)
}

// hexToBytes decodes a hex string, tolerating a leading "0x"/"0X" prefix
// and either case, matching the host platforms this core ships to.
func hexToBytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, protocol.NewInvalidHexError("empty hex string")
	}
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s)%2 != 0 {
		return nil, protocol.NewInvalidHexError("odd length hex string: %d", len(s))
	}

	out := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok := hexDigit(s[i])
		if !ok {
			return nil, protocol.NewInvalidHexError("invalid hex at position %d", i)
		}
		lo, ok := hexDigit(s[i+1])
		if !ok {
			return nil, protocol.NewInvalidHexError("invalid hex at position %d", i+1)
		}
		out[i/2] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
