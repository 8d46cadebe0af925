// Package session persists the signed-in session between runs.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// lightweight per-user session store (file, 0600) with AES-GCM obfuscation.
// Not a replacement for OS keychains but avoids a plain-text token on disk.

const fileName = "session.json"

// Session is the authenticated state handed back by the platform.
type Session struct {
	Token     string    `json:"token"`
	Account   string    `json:"account"`
	Community string    `json:"community,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionFile struct {
	Payload string `json:"payload"` // base64(ciphertext of Session JSON)
}

// ErrNoSession is returned by Load when nothing is stored.
var ErrNoSession = fmt.Errorf("no stored session")

// Store saves the session, replacing any previous one.
func Store(s Session) error {
	if s.Token == "" {
		return fmt.Errorf("session token required")
	}
	path, err := filePath()
	if err != nil {
		return err
	}
	plain, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ct, err := encrypt(plain)
	if err != nil {
		return err
	}
	return save(path, sessionFile{Payload: base64.StdEncoding.EncodeToString(ct)})
}

// Load returns the stored session, or ErrNoSession.
func Load() (Session, error) {
	path, err := filePath()
	if err != nil {
		return Session{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return Session{}, err
	}
	raw, err := base64.StdEncoding.DecodeString(sf.Payload)
	if err != nil {
		return Session{}, err
	}
	plain, err := decrypt(raw)
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(plain, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Clear removes any stored session. Clearing when nothing is stored is not
// an error: failed sign-ins call this unconditionally.
func Clear() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func filePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "kindling")
	if err := os.MkdirAll(dir, 0o700); err != nil { // restrict directory
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func save(path string, sf sessionFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func masterKey() []byte {
	user := os.Getenv("USER")
	base := fmt.Sprintf("kindling-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
