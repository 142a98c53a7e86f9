// Package main exports a C ABI for the aliasvault-core vault engine,
// built with `go build -buildmode=c-shared`. Every exported function
// takes and/or returns a null-terminated C string carrying JSON; the
// caller owns every returned pointer and must release it with
// FreeString. Mirrors the shape of the original Rust C-FFI layer this
// engine replaces: JSON in, JSON out, one explicit free function.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"unsafe"

	"github.com/lanedirt/aliasvault-core/internal/credentialmatcher"
	"github.com/lanedirt/aliasvault-core/internal/vaultmerge"
	"github.com/lanedirt/aliasvault-core/internal/vaultpruner"
	"github.com/lanedirt/aliasvault-core/pkg/protocol"
	"github.com/lanedirt/aliasvault-core/pkg/srp"
)

func main() {}

// FreeString releases a string previously returned by any function in
// this library. Passing any other pointer is undefined behavior.
//
//export FreeString
func FreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

//export MergeVaultsFFI
func MergeVaultsFFI(inputJSON *C.char) *C.char {
	return jsonResult(vaultmerge.MergeJSON(C.GoString(inputJSON)))
}

//export PruneVaultFFI
func PruneVaultFFI(inputJSON *C.char) *C.char {
	return jsonResult(vaultpruner.PruneJSON(C.GoString(inputJSON)))
}

//export FilterCredentialsFFI
func FilterCredentialsFFI(inputJSON *C.char) *C.char {
	return jsonResult(credentialmatcher.FilterCredentialsJSON(C.GoString(inputJSON)))
}

//export SrpGenerateSaltFFI
func SrpGenerateSaltFFI() *C.char {
	return marshalResult(srp.GenerateSalt())
}

//export SrpDerivePrivateKeyFFI
func SrpDerivePrivateKeyFFI(saltHex, identity, passwordHash *C.char) *C.char {
	return marshalResult(srp.DerivePrivateKey(C.GoString(saltHex), C.GoString(identity), C.GoString(passwordHash)))
}

//export SrpDeriveVerifierFFI
func SrpDeriveVerifierFFI(privateKeyHex *C.char) *C.char {
	return marshalResult(srp.DeriveVerifier(C.GoString(privateKeyHex)))
}

//export SrpGenerateClientEphemeralFFI
func SrpGenerateClientEphemeralFFI() *C.char {
	return marshalResult(srp.GenerateEphemeral())
}

//export SrpGenerateServerEphemeralFFI
func SrpGenerateServerEphemeralFFI(verifierHex *C.char) *C.char {
	return marshalResult(srp.GenerateEphemeralServer(C.GoString(verifierHex)))
}

//export SrpDeriveClientSessionFFI
func SrpDeriveClientSessionFFI(clientSecretHex, serverPublicHex, saltHex, identity, privateKeyHex *C.char) *C.char {
	return marshalResult(srp.DeriveSession(
		C.GoString(clientSecretHex), C.GoString(serverPublicHex),
		C.GoString(saltHex), C.GoString(identity), C.GoString(privateKeyHex),
	))
}

//export SrpDeriveServerSessionFFI
func SrpDeriveServerSessionFFI(serverSecretHex, clientPublicHex, saltHex, identity, verifierHex, clientProofHex *C.char) *C.char {
	session, err := srp.DeriveSessionServer(
		C.GoString(serverSecretHex), C.GoString(clientPublicHex),
		C.GoString(saltHex), C.GoString(identity),
		C.GoString(verifierHex), C.GoString(clientProofHex),
	)
	if err != nil {
		return errorResponse(err)
	}
	if session == nil {
		// A failed proof is a negative result, not an error: callers
		// distinguish it by checking for a null session field.
		return C.CString(`{"success":true,"session":null}`)
	}
	data, err := json.Marshal(struct {
		Success bool            `json:"success"`
		Session *srp.SrpSession `json:"session"`
	}{Success: true, Session: session})
	if err != nil {
		return errorResponse(protocol.NewJSONError(err))
	}
	return C.CString(string(data))
}

//export SrpVerifySessionFFI
func SrpVerifySessionFFI(clientPublicHex, clientProofHex, sessionKeyHex, serverProofHex *C.char) *C.char {
	ok, err := srp.VerifySession(
		C.GoString(clientPublicHex), C.GoString(clientProofHex),
		C.GoString(sessionKeyHex), C.GoString(serverProofHex),
	)
	if err != nil {
		return errorResponse(err)
	}
	data, _ := json.Marshal(struct {
		Success  bool `json:"success"`
		Verified bool `json:"verified"`
	}{Success: true, Verified: ok})
	return C.CString(string(data))
}

// jsonResult wraps a function that already returns its own JSON string
// (the internal engine packages' *JSON entry points).
func jsonResult(outputJSON string, err error) *C.char {
	if err != nil {
		return errorResponse(err)
	}
	return C.CString(outputJSON)
}

// marshalResult wraps a function returning a plain Go value that still
// needs JSON encoding (the lower-level pkg/srp functions).
func marshalResult(value any, err error) *C.char {
	if err != nil {
		return errorResponse(err)
	}
	data, err := json.Marshal(struct {
		Success bool `json:"success"`
		Value   any  `json:"value"`
	}{Success: true, Value: value})
	if err != nil {
		return errorResponse(protocol.NewJSONError(err))
	}
	return C.CString(string(data))
}

func errorResponse(err error) *C.char {
	envelope := protocol.NewErrorEnvelope(err)
	data, marshalErr := json.Marshal(envelope)
	if marshalErr != nil {
		return C.CString(`{"success":false,"error":"internal error","code":"GENERAL_ERROR"}`)
	}
	return C.CString(string(data))
}
