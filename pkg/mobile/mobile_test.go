package mobile_test

import (
	"encoding/json"
	"testing"

	"github.com/lanedirt/aliasvault-core/pkg/mobile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullSrpFlow(t *testing.T) {
	salt, err := mobile.SrpGenerateSalt()
	require.NoError(t, err)

	privateKey, err := mobile.SrpDerivePrivateKey(salt, "alice", "deadbeef")
	require.NoError(t, err)

	verifier, err := mobile.SrpDeriveVerifier(privateKey)
	require.NoError(t, err)
	assert.NotEmpty(t, verifier)

	clientEphemeralJSON, err := mobile.SrpGenerateClientEphemeral()
	require.NoError(t, err)
	assert.Contains(t, clientEphemeralJSON, `"public"`)
	assert.Contains(t, clientEphemeralJSON, `"secret"`)

	var clientEph, serverEph struct{ Public, Secret string }
	require.NoError(t, json.Unmarshal([]byte(clientEphemeralJSON), &clientEph))

	serverEphemeralJSON, err := mobile.SrpGenerateServerEphemeral(verifier)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(serverEphemeralJSON), &serverEph))

	clientSessionJSON, err := mobile.SrpDeriveClientSession(clientEph.Secret, serverEph.Public, salt, "alice", privateKey)
	require.NoError(t, err)
	var clientSession, serverSession struct{ Proof, Key string }
	require.NoError(t, json.Unmarshal([]byte(clientSessionJSON), &clientSession))

	serverSessionJSON, err := mobile.SrpDeriveServerSession(serverEph.Secret, clientEph.Public, salt, "alice", verifier, clientSession.Proof)
	require.NoError(t, err)
	require.NotEmpty(t, serverSessionJSON, "a matching client proof must produce a server session")
	require.NoError(t, json.Unmarshal([]byte(serverSessionJSON), &serverSession))
	assert.Equal(t, clientSession.Key, serverSession.Key)

	ok, err := mobile.SrpVerifySession(clientEph.Public, clientSession.Proof, clientSession.Key, serverSession.Proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMergeVaults_InvalidJSONReturnsError(t *testing.T) {
	_, err := mobile.MergeVaults("not json")
	assert.Error(t, err)
}

func TestPruneVault_InvalidJSONReturnsError(t *testing.T) {
	_, err := mobile.PruneVault("not json")
	assert.Error(t, err)
}

func TestFilterCredentials_EmptyInputReturnsEmptyMatch(t *testing.T) {
	out, err := mobile.FilterCredentials(`{"credentials": [], "current_url": "https://example.com"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"matched_ids":[]`)
}
