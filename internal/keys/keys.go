// Package keys derives the account signing key from a recovery phrase and
// PIN. The derivation is deterministic: the same phrase and PIN always
// produce the same ed25519 key, so the key never needs to be stored.
package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	seedInfo = "kindling-signing-key-v1"
	// AccountLen is the length of a derived account name.
	AccountLen = 12
)

var accountEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// KeyPair is a derived signing identity.
type KeyPair struct {
	Account string
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Derive produces the signing key for a validated passphrase and 6-digit
// PIN. The PIN is mixed in as HKDF salt, so a different PIN yields an
// unrelated key rather than a near-miss.
func Derive(passphrase, pin string) (KeyPair, error) {
	if strings.TrimSpace(passphrase) == "" {
		return KeyPair{}, fmt.Errorf("derive key: empty passphrase")
	}
	if len(pin) == 0 {
		return KeyPair{}, fmt.Errorf("derive key: empty pin")
	}
	h := hkdf.New(sha256.New, []byte(passphrase), []byte(pin), []byte(seedInfo))
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(h, seed); err != nil {
		return KeyPair{}, fmt.Errorf("derive key: %w", err)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return KeyPair{
		Account: AccountFor(pub),
		Public:  pub,
		Private: priv,
	}, nil
}

// AccountFor maps a public key to its account name: the first 12 characters
// of the lowercased base32 SHA-256 of the key.
func AccountFor(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	enc := strings.ToLower(accountEncoding.EncodeToString(sum[:]))
	return enc[:AccountLen]
}

// Sign signs a server challenge with the derived private key.
func (k KeyPair) Sign(challenge []byte) []byte {
	return ed25519.Sign(k.Private, challenge)
}

// Verify reports whether sig is a valid signature of challenge by this key.
func (k KeyPair) Verify(challenge, sig []byte) bool {
	return ed25519.Verify(k.Public, challenge, sig)
}
