package srp

import (
	"crypto/sha256"
	"math/big"

	"github.com/lanedirt/aliasvault-core/pkg/protocol"
)

// GenerateEphemeralServer generates the server's ephemeral key pair (B, b)
// from the stored verifier.
//
//	B = (k*v + g^b) mod N, padded to 256 bytes; b is 64 random bytes.
func GenerateEphemeralServer(verifierHex string) (SrpEphemeral, error) {
	vBytes, err := hexToBytes(verifierHex)
	if err != nil {
		return SrpEphemeral{}, err
	}
	v := new(big.Int).SetBytes(vBytes)

	bBytes, err := randomBytes(ephemeralSecretBytes)
	if err != nil {
		return SrpEphemeral{}, err
	}
	b := new(big.Int).SetBytes(bBytes)

	kv := new(big.Int).Mul(k, v)
	gb := new(big.Int).Exp(g, b, n)

	bPub := new(big.Int).Add(kv, gb)
	bPub.Mod(bPub, n)

	return SrpEphemeral{
		Public: bytesToHex(padToLength(bPub.Bytes(), groupByteLen)),
		Secret: bytesToHex(bBytes),
	}, nil
}

// DeriveSessionServer verifies the client's proof M1 and, on success,
// derives the server session (M2 and the shared session key K). It
// returns (nil, nil) on an authentication mismatch — a negative
// authentication outcome is not an error condition.
//
//	S = (A * v^u)^b mod N
//	K = SHA256(PAD(S))
//	expected M1 = SHA256( (H(N) XOR H(g)) || H(identity) || salt || PAD(A) || PAD(B) || K )
//	M2 = SHA256(PAD(A) || M1 || K)
func DeriveSessionServer(serverSecretHex, clientPublicHex, saltHex, identity, verifierHex, clientProofHex string) (*SrpSession, error) {
	bBytes, err := hexToBytes(serverSecretHex)
	if err != nil {
		return nil, err
	}
	aPubBytes, err := hexToBytes(clientPublicHex)
	if err != nil {
		return nil, err
	}
	saltBytes, err := hexToBytes(saltHex)
	if err != nil {
		return nil, err
	}
	vBytes, err := hexToBytes(verifierHex)
	if err != nil {
		return nil, err
	}
	clientM1, err := hexToBytes(clientProofHex)
	if err != nil {
		return nil, err
	}

	b := new(big.Int).SetBytes(bBytes)
	aPub := new(big.Int).SetBytes(aPubBytes)
	v := new(big.Int).SetBytes(vBytes)

	if isZeroModN(aPub) {
		return nil, protocol.NewInvalidParameterError("client public ephemeral is invalid: A mod N == 0")
	}

	bPub := new(big.Int).Add(new(big.Int).Mul(k, v), new(big.Int).Exp(g, b, n))
	bPub.Mod(bPub, n)

	aPubPadded := padToLength(aPub.Bytes(), groupByteLen)
	bPubPadded := padToLength(bPub.Bytes(), groupByteLen)

	u := computeU(aPubPadded, bPubPadded)

	// S = (A * v^u)^b mod N
	vu := new(big.Int).Exp(v, u, n)
	base := new(big.Int).Mul(aPub, vu)
	base.Mod(base, n)

	s := new(big.Int).Exp(base, b, n)
	sBytes := padToLength(s.Bytes(), groupByteLen)

	key := sha256.Sum256(sBytes)
	expectedM1 := computeM1(aPubPadded, bPubPadded, saltBytes, identity, key[:])

	if !constantTimeEqual(expectedM1, clientM1) {
		return nil, nil
	}

	m2 := computeM2(aPubPadded, expectedM1, key[:])

	return &SrpSession{
		Proof: bytesToHex(m2),
		Key:   bytesToHex(key[:]),
	}, nil
}
