// Package main builds the aliasvault-core vault engine as a WASM module
// (GOOS=js GOARCH=wasm), exposing every JSON-in/JSON-out operation as a
// function on the JS global object. Every exported function returns a
// JSON string; the merge/prune/filter functions take a JSON string and
// the srp* functions take their hex and identity arguments as plain
// strings. The names mirror the naming the original
// wasm-bindgen layer used (mergeVaultsJson, pruneVaultJson, ...) so a
// JS host can swap one module for the other without touching call
// sites.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/lanedirt/aliasvault-core/internal/credentialmatcher"
	"github.com/lanedirt/aliasvault-core/internal/vaultmerge"
	"github.com/lanedirt/aliasvault-core/internal/vaultpruner"
	"github.com/lanedirt/aliasvault-core/pkg/protocol"
	"github.com/lanedirt/aliasvault-core/pkg/srp"
)

func main() {
	global := js.Global()

	global.Set("mergeVaultsJson", jsonPassthrough(vaultmerge.MergeJSON))
	global.Set("pruneVaultJson", jsonPassthrough(vaultpruner.PruneJSON))
	global.Set("filterCredentialsJson", jsonPassthrough(credentialmatcher.FilterCredentialsJSON))

	global.Set("srpGenerateSaltJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		return marshalResult(srp.GenerateSalt())
	}))
	global.Set("srpDerivePrivateKeyJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 3 {
			return marshalResult("", protocol.NewGeneralError("srpDerivePrivateKeyJson requires 3 arguments"))
		}
		return marshalResult(srp.DerivePrivateKey(args[0].String(), args[1].String(), args[2].String()))
	}))
	global.Set("srpDeriveVerifierJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return marshalResult("", protocol.NewGeneralError("srpDeriveVerifierJson requires 1 argument"))
		}
		return marshalResult(srp.DeriveVerifier(args[0].String()))
	}))
	global.Set("srpGenerateClientEphemeralJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		return marshalResult(srp.GenerateEphemeral())
	}))
	global.Set("srpGenerateServerEphemeralJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return marshalResult(srp.SrpEphemeral{}, protocol.NewGeneralError("srpGenerateServerEphemeralJson requires 1 argument"))
		}
		return marshalResult(srp.GenerateEphemeralServer(args[0].String()))
	}))
	global.Set("srpDeriveClientSessionJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 5 {
			return marshalResult(srp.SrpSession{}, protocol.NewGeneralError("srpDeriveClientSessionJson requires 5 arguments"))
		}
		return marshalResult(srp.DeriveSession(args[0].String(), args[1].String(), args[2].String(), args[3].String(), args[4].String()))
	}))
	global.Set("srpDeriveServerSessionJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 6 {
			return marshalError(protocol.NewGeneralError("srpDeriveServerSessionJson requires 6 arguments"))
		}
		session, err := srp.DeriveSessionServer(args[0].String(), args[1].String(), args[2].String(), args[3].String(), args[4].String(), args[5].String())
		if err != nil {
			return marshalError(err)
		}
		// A failed proof is a negative result, not an error: the JSON
		// result carries session:null rather than an error envelope.
		return marshalSuccess(struct {
			Session *srp.SrpSession `json:"session"`
		}{Session: session})
	}))
	global.Set("srpVerifySessionJson", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 4 {
			return marshalError(protocol.NewGeneralError("srpVerifySessionJson requires 4 arguments"))
		}
		ok, err := srp.VerifySession(args[0].String(), args[1].String(), args[2].String(), args[3].String())
		if err != nil {
			return marshalError(err)
		}
		return marshalSuccess(struct {
			Verified bool `json:"verified"`
		}{Verified: ok})
	}))

	// Block forever: a WASM "main" must not return while the module is
	// in use, or the JS runtime tears down its exported globals.
	select {}
}

// jsonPassthrough wraps an engine entry point that already returns its
// own JSON-encoded output string.
func jsonPassthrough(fn func(string) (string, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return marshalError(protocol.NewGeneralError("expected 1 argument"))
		}
		out, err := fn(args[0].String())
		if err != nil {
			return marshalError(err)
		}
		return out
	})
}

// marshalResult wraps a (value, error) pair from a pkg/srp function
// into a success/error JSON string.
func marshalResult(value any, err error) string {
	if err != nil {
		return marshalError(err)
	}
	return marshalSuccess(struct {
		Value any `json:"value"`
	}{Value: value})
}

func marshalSuccess(payload any) string {
	return mergeAndMarshal(payload)
}

func marshalError(err error) string {
	data, marshalErr := json.Marshal(protocol.NewErrorEnvelope(err))
	if marshalErr != nil {
		return `{"success":false,"error":"internal error","code":"GENERAL_ERROR"}`
	}
	return string(data)
}

// mergeAndMarshal flattens {"success": true} with payload's own fields
// into one JSON object.
func mergeAndMarshal(payload any) string {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return marshalError(protocol.NewJSONError(err))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payloadJSON, &fields); err != nil {
		return marshalError(protocol.NewJSONError(err))
	}
	fields["success"] = json.RawMessage("true")

	data, err := json.Marshal(fields)
	if err != nil {
		return marshalError(protocol.NewJSONError(err))
	}
	return string(data)
}
