package javaprotocol

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/go-mclib/protocol/stream"
)

// Encryption drives the login encryption handshake: generate a shared
// secret, RSA-encrypt it (and the server's verify token) under the
// server's public key, then flip the connection over to AES-128-CFB8
// during the Encryption Request/Response exchange.
type Encryption struct {
	client       *TCPClient
	sharedSecret []byte
}

// GenerateSharedSecret produces a fresh random 16-byte AES-128 key.
func (e *Encryption) GenerateSharedSecret() ([]byte, error) {
	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	e.sharedSecret = secret
	return secret, nil
}

// EncryptWithPublicKey RSA-PKCS1v1.5-encrypts data under derPublicKey (the
// DER-encoded SubjectPublicKeyInfo the server sent in Encryption Request).
func (e *Encryption) EncryptWithPublicKey(derPublicKey, data []byte) ([]byte, error) {
	pub, err := x509.ParsePKIXPublicKey(derPublicKey)
	if err != nil {
		return nil, fmt.Errorf("javaprotocol: parse server public key: %w", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("javaprotocol: server public key is %T, want *rsa.PublicKey", pub)
	}
	return rsa.EncryptPKCS1v15(rand.Reader, rsaPub, data)
}

// EnableEncryption installs the AES-128-CFB8 cipher keyed on the
// previously-generated shared secret. Call right after the Encryption
// Response has been written; every later byte in both directions is
// encrypted.
func (e *Encryption) EnableEncryption() error {
	if len(e.sharedSecret) == 0 {
		return fmt.Errorf("javaprotocol: EnableEncryption called before GenerateSharedSecret")
	}
	cipher, err := stream.NewCipher(e.sharedSecret)
	if err != nil {
		return err
	}
	e.client.installCipher(cipher)
	return nil
}
