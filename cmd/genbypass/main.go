// Command genbypass prints a fresh bypass-credential pair for the hub:
// a 32-byte hex username, a 48-byte hex password, and the bcrypt hash of
// the password. Only the hash goes into the environment; the plaintext
// password is shown once, here.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

func main() {
	user := make([]byte, 32)
	pass := make([]byte, 48)
	if _, err := rand.Read(user); err != nil {
		fmt.Fprintln(os.Stderr, "rand:", err)
		os.Exit(1)
	}
	if _, err := rand.Read(pass); err != nil {
		fmt.Fprintln(os.Stderr, "rand:", err)
		os.Exit(1)
	}

	username := hex.EncodeToString(user)
	password := hex.EncodeToString(pass)
	hash, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}

	fmt.Printf("BYPASS_AUTH_USERNAME=%s\n", username)
	fmt.Printf("BYPASS_AUTH_PASSWORD_HASH=%s\n", hash)
	fmt.Printf("# password (store securely, not in the environment): %s\n", password)
}
