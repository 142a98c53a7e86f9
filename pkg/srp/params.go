// Package srp implements SRP-6a (Secure Remote Password) authentication
// over the RFC 5054 2048-bit group with SHA-256, plus Argon2id
// password-hash derivation. Every public value is an uppercase hex string;
// every operation is a pure function of its arguments.
package srp

import (
	"crypto/sha256"
	"math/big"
)

// groupByteLen is the byte length of the RFC 5054 2048-bit modulus N.
// Every padded public value (A, B, v, S) is left-padded to this length.
const groupByteLen = 256

var (
	// n is the RFC 5054 2048-bit safe prime (Appendix A).
	n = initN()

	// g is the generator, fixed at 2 for this group.
	g = big.NewInt(2)

	// k is the SRP-6a multiplier: k = H(N || PAD(g, groupByteLen)).
	// g is padded here only; every other use of H(g) in this package
	// hashes g unpadded.
	k = computeK()
)

func initN() *big.Int {
	v := new(big.Int)
	v.SetString(
		"AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050"+
			"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50"+
			"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8"+
			"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B"+
			"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748"+
			"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6"+
			"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6"+
			"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73", 16)
	return v
}

func computeK() *big.Int {
	h := sha256.New()
	h.Write(n.Bytes())
	h.Write(padToLength(g.Bytes(), groupByteLen))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// padToLength left-pads a big-endian byte slice with zeros to targetLen.
// Slices already at or past targetLen are returned unchanged, matching
// big.Int.Bytes()'s habit of dropping leading zero bytes.
func padToLength(b []byte, targetLen int) []byte {
	if len(b) >= targetLen {
		return b
	}
	padded := make([]byte, targetLen)
	copy(padded[targetLen-len(b):], b)
	return padded
}

// isZeroModN reports whether v mod N == 0 — the SRP-6a safety check every
// received ephemeral (A on the server, B on the client) must pass.
func isZeroModN(v *big.Int) bool {
	return new(big.Int).Mod(v, n).Sign() == 0
}
