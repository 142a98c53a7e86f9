package srp

import (
	"crypto/sha256"
	"math/big"

	"github.com/lanedirt/aliasvault-core/pkg/protocol"
)

// GenerateSalt returns a fresh 32-byte cryptographic salt as uppercase hex.
func GenerateSalt() (string, error) {
	salt, err := randomBytes(32)
	if err != nil {
		return "", err
	}
	return bytesToHex(salt), nil
}

// DerivePrivateKey derives the SRP private key x from a salt (hex), an
// identity, and a pre-hashed password (hex, consumed as raw ASCII text,
// never hex-decoded — the password hash is itself opaque to this layer):
//
//	x = SHA256( salt || SHA256( identity || ":" || password_hash ) )
func DerivePrivateKey(saltHex, identity, passwordHash string) (string, error) {
	salt, err := hexToBytes(saltHex)
	if err != nil {
		return "", err
	}

	inner := sha256.New()
	inner.Write([]byte(identity))
	inner.Write([]byte(":"))
	inner.Write([]byte(passwordHash))
	innerSum := inner.Sum(nil)

	outer := sha256.New()
	outer.Write(salt)
	outer.Write(innerSum)

	return bytesToHex(outer.Sum(nil)), nil
}

// DeriveVerifier computes the password verifier v = g^x mod N from the
// private key x (hex), padded to 256 bytes.
func DeriveVerifier(privateKeyHex string) (string, error) {
	xBytes, err := hexToBytes(privateKeyHex)
	if err != nil {
		return "", err
	}
	x := new(big.Int).SetBytes(xBytes)

	v := new(big.Int).Exp(g, x, n)
	return bytesToHex(padToLength(v.Bytes(), groupByteLen)), nil
}

// GenerateEphemeral generates the client's ephemeral key pair (A, a).
// A = g^a mod N, padded to 256 bytes; a is 64 random bytes.
func GenerateEphemeral() (SrpEphemeral, error) {
	aBytes, err := randomBytes(ephemeralSecretBytes)
	if err != nil {
		return SrpEphemeral{}, err
	}
	a := new(big.Int).SetBytes(aBytes)

	aPub := new(big.Int).Exp(g, a, n)

	return SrpEphemeral{
		Public: bytesToHex(padToLength(aPub.Bytes(), groupByteLen)),
		Secret: bytesToHex(aBytes),
	}, nil
}

// DeriveSession derives the client session (proof M1 and session key K)
// from the server's ephemeral public value B.
//
//	S = (B + N - k*g^x mod N)^(a + u*x) mod N
//	K = SHA256(PAD(S))
//	M1 = SHA256( (H(N) XOR H(g)) || H(identity) || salt || PAD(A) || PAD(B) || K )
func DeriveSession(clientSecretHex, serverPublicHex, saltHex, identity, privateKeyHex string) (SrpSession, error) {
	aBytes, err := hexToBytes(clientSecretHex)
	if err != nil {
		return SrpSession{}, err
	}
	bPubBytes, err := hexToBytes(serverPublicHex)
	if err != nil {
		return SrpSession{}, err
	}
	saltBytes, err := hexToBytes(saltHex)
	if err != nil {
		return SrpSession{}, err
	}
	xBytes, err := hexToBytes(privateKeyHex)
	if err != nil {
		return SrpSession{}, err
	}

	a := new(big.Int).SetBytes(aBytes)
	bPub := new(big.Int).SetBytes(bPubBytes)
	x := new(big.Int).SetBytes(xBytes)

	if isZeroModN(bPub) {
		return SrpSession{}, protocol.NewInvalidParameterError("server public ephemeral is invalid: B mod N == 0")
	}

	aPub := new(big.Int).Exp(g, a, n)
	aPubBytes := padToLength(aPub.Bytes(), groupByteLen)
	bPubPadded := padToLength(bPub.Bytes(), groupByteLen)

	u := computeU(aPubBytes, bPubPadded)

	// S = (B + N - k*g^x mod N)^(a + u*x) mod N
	kgx := new(big.Int).Exp(g, x, n)
	kgx.Mul(k, kgx)
	kgx.Mod(kgx, n)

	base := new(big.Int).Add(n, bPub)
	base.Sub(base, kgx)
	base.Mod(base, n)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, a)

	s := new(big.Int).Exp(base, exp, n)
	sBytes := padToLength(s.Bytes(), groupByteLen)

	key := sha256.Sum256(sBytes)
	m1 := computeM1(aPubBytes, bPubPadded, saltBytes, identity, key[:])

	return SrpSession{
		Proof: bytesToHex(m1),
		Key:   bytesToHex(key[:]),
	}, nil
}

// VerifySession verifies the server's proof M2 against the client's own
// A, M1, and K, in constant time:
//
//	expected M2 = SHA256(A || M1 || K)
func VerifySession(clientPublicHex, clientProofHex, sessionKeyHex, serverProofHex string) (bool, error) {
	aPubBytes, err := hexToBytes(clientPublicHex)
	if err != nil {
		return false, err
	}
	m1Bytes, err := hexToBytes(clientProofHex)
	if err != nil {
		return false, err
	}
	keyBytes, err := hexToBytes(sessionKeyHex)
	if err != nil {
		return false, err
	}
	serverM2, err := hexToBytes(serverProofHex)
	if err != nil {
		return false, err
	}

	expected := computeM2(aPubBytes, m1Bytes, keyBytes)
	return constantTimeEqual(expected, serverM2), nil
}
