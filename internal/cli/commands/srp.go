package commands

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lanedirt/aliasvault-core/pkg/srp"
	"golang.org/x/term"
)

// SrpCommand implements the 'srp' command: a local demonstration of the
// full registration-then-login SRP-6a handshake, driven entirely inside
// this process (no network transport exists in this engine — a real
// client and server exchange these same values over whatever transport
// the host application provides).
type SrpCommand struct{}

// NewSrpCommand creates a new srp command instance.
func NewSrpCommand() *SrpCommand {
	return &SrpCommand{}
}

// Execute runs the srp command with the provided arguments.
func (c *SrpCommand) Execute(args []string) {
	fs := flag.NewFlagSet("srp", flag.ExitOnError)
	username := fs.String("username", "", "Identity to register/authenticate (prompts if not provided)")
	password := fs.String("password", "", "Password to register/authenticate with (prompts if not provided)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: aliasvaultcore srp [flags]

Runs a full SRP-6a registration and login handshake locally, printing
the salt, the verifier, the client and server session keys and whether
the mutual proof verified, as plain text. Ephemeral keys and proofs are
not printed.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	user := *username
	if user == "" {
		user = promptUsername()
	}

	pass := *password
	if pass == "" {
		pass = promptPassword()
	}

	if err := c.run(user, pass); err != nil {
		exitWithError("%v", err)
	}
}

func (c *SrpCommand) run(username, password string) error {
	passwordHash := hashPassword(password)

	salt, err := srp.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	privateKey, err := srp.DerivePrivateKey(salt, username, passwordHash)
	if err != nil {
		return fmt.Errorf("derive private key: %w", err)
	}

	verifier, err := srp.DeriveVerifier(privateKey)
	if err != nil {
		return fmt.Errorf("derive verifier: %w", err)
	}

	fmt.Printf("Registration:\n  salt:     %s\n  verifier: %s\n\n", salt, verifier)

	clientEphemeral, err := srp.GenerateEphemeral()
	if err != nil {
		return fmt.Errorf("generate client ephemeral: %w", err)
	}

	serverEphemeral, err := srp.GenerateEphemeralServer(verifier)
	if err != nil {
		return fmt.Errorf("generate server ephemeral: %w", err)
	}

	clientSession, err := srp.DeriveSession(clientEphemeral.Secret, serverEphemeral.Public, salt, username, privateKey)
	if err != nil {
		return fmt.Errorf("derive client session: %w", err)
	}

	serverSession, err := srp.DeriveSessionServer(serverEphemeral.Secret, clientEphemeral.Public, salt, username, verifier, clientSession.Proof)
	if err != nil {
		return fmt.Errorf("derive server session: %w", err)
	}
	if serverSession == nil {
		return fmt.Errorf("authentication failed: client proof rejected")
	}

	ok, err := srp.VerifySession(clientEphemeral.Public, clientSession.Proof, clientSession.Key, serverSession.Proof)
	if err != nil {
		return fmt.Errorf("verify session: %w", err)
	}
	if !ok {
		return fmt.Errorf("authentication failed: server proof did not verify")
	}

	fmt.Printf("Login:\n  client session key: %s\n  server session key: %s\n  mutual proof verified: %v\n",
		clientSession.Key, serverSession.Key, ok)
	return nil
}

// hashPassword stands in for the host application's own password hash
// (e.g. Argon2id over a master password) — this engine's SRP layer
// takes an already-hashed password, never the raw password itself.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// promptUsername prompts the user to enter their username.
func promptUsername() string {
	fmt.Fprintf(os.Stderr, "Username: ")
	reader := bufio.NewReader(os.Stdin)
	username, _ := reader.ReadString('\n')
	return strings.TrimSpace(username)
}

// promptPassword prompts the user to enter their password (hidden input).
func promptPassword() string {
	fmt.Fprintf(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintf(os.Stderr, "\n")
	if err != nil {
		exitWithError("failed to read password: %v", err)
	}
	return string(password)
}
