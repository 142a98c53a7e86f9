package srp

import "golang.org/x/crypto/argon2"

// Argon2id parameters fixed by the existing AliasVault vault format. These
// must never change: the salt is consumed as raw UTF-8 bytes, not
// hex-decoded, and the output length is exactly 32 bytes.
const (
	argon2MemoryKiB  = 19456
	argon2Iterations = 2
	argon2Threads    = 1
	argon2KeyLen     = 32
)

// HashPassword derives an Argon2id key from password and salt and returns
// it as uppercase hex. salt is hashed as its raw UTF-8 bytes — it is not
// hex-decoded first, even when it looks like a hex string.
func HashPassword(password, salt string) string {
	out := argon2.IDKey([]byte(password), []byte(salt), argon2Iterations, argon2MemoryKiB, argon2Threads, argon2KeyLen)
	return bytesToHex(out)
}
