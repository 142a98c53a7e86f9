package srp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"math/big"

	"github.com/lanedirt/aliasvault-core/pkg/protocol"
)

// SrpEphemeral is a (public, secret) ephemeral key pair, both uppercase hex.
type SrpEphemeral struct {
	Public string `json:"public"`
	Secret string `json:"secret"`
}

// SrpSession is the output of a session derivation: a proof (M1 for the
// client, M2 for the server) and the shared session key, both uppercase hex.
type SrpSession struct {
	Proof string `json:"proof"`
	Key   string `json:"key"`
}

// ephemeralSecretBytes is the entropy width of a/b, per spec: 64 random bytes.
const ephemeralSecretBytes = 64

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, protocol.NewGeneralError("failed to generate random bytes: %s", err)
	}
	return b, nil
}

// computeU computes the scrambling parameter u = SHA256(PAD(A) || PAD(B)).
// Callers pass already-padded A/B.
func computeU(aPub, bPub []byte) *big.Int {
	h := sha256.New()
	h.Write(aPub)
	h.Write(bPub)
	return new(big.Int).SetBytes(h.Sum(nil))
}

// computeM1 computes the client proof:
//
//	M1 = SHA256( (SHA256(N) XOR SHA256(g)) || SHA256(identity) || salt || PAD(A) || PAD(B) || K )
//
// g is hashed unpadded here — only k = H(N || PAD(g)) pads g.
func computeM1(aPub, bPub, salt []byte, identity string, key []byte) []byte {
	hN := sha256.Sum256(n.Bytes())
	hG := sha256.Sum256(g.Bytes())

	hNXorHG := make([]byte, len(hN))
	for i := range hN {
		hNXorHG[i] = hN[i] ^ hG[i]
	}

	hIdentity := sha256.Sum256([]byte(identity))

	h := sha256.New()
	h.Write(hNXorHG)
	h.Write(hIdentity[:])
	h.Write(salt)
	h.Write(aPub)
	h.Write(bPub)
	h.Write(key)
	return h.Sum(nil)
}

// computeM2 computes the server proof M2 = SHA256(PAD(A) || M1 || K).
func computeM2(aPub, m1, key []byte) []byte {
	h := sha256.New()
	h.Write(aPub)
	h.Write(m1)
	h.Write(key)
	return h.Sum(nil)
}

func constantTimeEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}
