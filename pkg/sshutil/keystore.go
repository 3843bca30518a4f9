package sshutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// KeyStore records host key digests on first contact and flags later
// mismatches. This is trust-on-first-use: a mismatch is reported through
// the warning callback but never blocks the connection, so the caller can
// decide whether to proceed.
type KeyStore struct {
	mu   sync.Mutex
	keys map[string]string // hostname -> sha256 hex digest
}

// NewKeyStore creates an empty trust-on-first-use key store.
func NewKeyStore() *KeyStore {
	return &KeyStore{keys: make(map[string]string)}
}

// Verify records the key for hostname on first contact and returns true.
// On subsequent contacts it returns false when the presented key's digest
// differs from the recorded one.
func (ks *KeyStore) Verify(hostname string, key ssh.PublicKey) bool {
	digest := fingerprint(key)

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if known, ok := ks.keys[hostname]; ok {
		return known == digest
	}
	ks.keys[hostname] = digest
	return true
}

// Known returns the recorded digest for hostname, if any.
func (ks *KeyStore) Known(hostname string) (string, bool) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	digest, ok := ks.keys[hostname]
	return digest, ok
}

// Callback returns an ssh.HostKeyCallback backed by the store. A mismatch
// invokes warn but does not fail the handshake.
func (ks *KeyStore) Callback(warn func(message string)) ssh.HostKeyCallback {
	return func(hostname string, _ net.Addr, key ssh.PublicKey) error {
		if !ks.Verify(hostname, key) && warn != nil {
			warn(fmt.Sprintf("host key mismatch for %s - possible security threat", hostname))
		}
		return nil
	}
}

func fingerprint(key ssh.PublicKey) string {
	sum := sha256.Sum256(key.Marshal())
	return hex.EncodeToString(sum[:])
}
