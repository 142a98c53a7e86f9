// Package mobile is the typed entry point meant to be built with
// `gomobile bind` into a Swift/Kotlin framework. Every function takes
// and returns plain strings (gomobile's binding generator maps Go
// string/error cleanly to both targets) and every error is either a
// *protocol.VaultError or a *protocol.SrpError, so the generated wrapper
// on either side can inspect CodeString() instead of parsing an error string.
package mobile

import (
	"encoding/json"

	"github.com/lanedirt/aliasvault-core/internal/credentialmatcher"
	"github.com/lanedirt/aliasvault-core/internal/vaultmerge"
	"github.com/lanedirt/aliasvault-core/internal/vaultpruner"
	"github.com/lanedirt/aliasvault-core/pkg/srp"
)

// MergeVaults reconciles a local vault against a server vault. inputJSON
// must decode to vaultmerge.MergeInput; the result is a
// vaultmerge.MergeOutput encoded as JSON.
func MergeVaults(inputJSON string) (string, error) {
	return vaultmerge.MergeJSON(inputJSON)
}

// PruneVault permanently deletes vault items trashed past their
// retention window. inputJSON must decode to vaultpruner.PruneInput.
func PruneVault(inputJSON string) (string, error) {
	return vaultpruner.PruneJSON(inputJSON)
}

// FilterCredentials ranks stored credentials against a page context.
// inputJSON must decode to credentialmatcher.CredentialMatcherInput.
func FilterCredentials(inputJSON string) (string, error) {
	return credentialmatcher.FilterCredentialsJSON(inputJSON)
}

// SrpGenerateSalt returns a new random salt as an uppercase hex string.
func SrpGenerateSalt() (string, error) {
	return srp.GenerateSalt()
}

// SrpDerivePrivateKey derives the SRP private key x from a salt,
// identity, and pre-hashed password (all hex/plain strings per
// pkg/srp's contract).
func SrpDerivePrivateKey(saltHex, identity, passwordHash string) (string, error) {
	return srp.DerivePrivateKey(saltHex, identity, passwordHash)
}

// SrpDeriveVerifier derives the password verifier v from a private key.
func SrpDeriveVerifier(privateKeyHex string) (string, error) {
	return srp.DeriveVerifier(privateKeyHex)
}

// SrpGenerateClientEphemeral generates a client ephemeral keypair (a, A)
// and returns it JSON-encoded as an SrpEphemeral.
func SrpGenerateClientEphemeral() (string, error) {
	return marshalEphemeral(srp.GenerateEphemeral())
}

// SrpGenerateServerEphemeral generates a server ephemeral keypair (b, B)
// derived from the stored verifier, JSON-encoded as an SrpEphemeral.
func SrpGenerateServerEphemeral(verifierHex string) (string, error) {
	return marshalEphemeral(srp.GenerateEphemeralServer(verifierHex))
}

// SrpDeriveClientSession computes the client's shared session key and
// proof M1, JSON-encoded as an SrpSession.
func SrpDeriveClientSession(clientSecretHex, serverPublicHex, saltHex, identity, privateKeyHex string) (string, error) {
	session, err := srp.DeriveSession(clientSecretHex, serverPublicHex, saltHex, identity, privateKeyHex)
	if err != nil {
		return "", err
	}
	return marshalJSON(session)
}

// SrpDeriveServerSession verifies the client's proof and, on success,
// computes the server's shared session key and proof M2, JSON-encoded
// as an SrpSession. Returns an empty string (not an error) when the
// client proof fails to verify — a negative authentication outcome is
// not an error condition.
func SrpDeriveServerSession(serverSecretHex, clientPublicHex, saltHex, identity, verifierHex, clientProofHex string) (string, error) {
	session, err := srp.DeriveSessionServer(serverSecretHex, clientPublicHex, saltHex, identity, verifierHex, clientProofHex)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", nil
	}
	return marshalJSON(session)
}

// SrpVerifySession checks the server's proof M2 against the client's
// own session key, in constant time.
func SrpVerifySession(clientPublicHex, clientProofHex, sessionKeyHex, serverProofHex string) (bool, error) {
	return srp.VerifySession(clientPublicHex, clientProofHex, sessionKeyHex, serverProofHex)
}

func marshalEphemeral(ephemeral srp.SrpEphemeral, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return marshalJSON(ephemeral)
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
