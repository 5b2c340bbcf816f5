package stream

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// Cipher wraps the AES-128-CFB8 stream cipher the Java Edition protocol
// uses once encryption is negotiated: the shared secret doubles as
// both key and IV, and feedback width is 8 bits rather than the full block
// size, which crypto/cipher.NewCFBEncrypter/Decrypter do not support —
// CFB8 is implemented directly against cipher.Block per the algorithm
// description in RFC 8018 §6.3 (generalized CFB, s=8 bits).
type Cipher struct {
	block     cipher.Block
	encryptIV [16]byte
	decryptIV [16]byte
}

// NewCipher builds a Cipher from the 16-byte shared secret, used as both
// the AES-128 key and the initial feedback register for both directions.
func NewCipher(sharedSecret []byte) (*Cipher, error) {
	if len(sharedSecret) != 16 {
		return nil, fmt.Errorf("stream: shared secret must be 16 bytes, got %d", len(sharedSecret))
	}
	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, err
	}
	var c Cipher
	c.block = block
	copy(c.encryptIV[:], sharedSecret)
	copy(c.decryptIV[:], sharedSecret)
	return &c, nil
}

// Encrypt transforms src into dst in place (dst and src may be the same
// slice), advancing the encrypt-side feedback register.
func (c *Cipher) Encrypt(dst, src []byte) {
	var scratch [16]byte
	for i := range src {
		c.block.Encrypt(scratch[:], c.encryptIV[:])
		out := src[i] ^ scratch[0]
		dst[i] = out
		copy(c.encryptIV[:15], c.encryptIV[1:])
		c.encryptIV[15] = out
	}
}

// Decrypt transforms src into dst in place (dst and src may be the same
// slice), advancing the decrypt-side feedback register.
func (c *Cipher) Decrypt(dst, src []byte) {
	var scratch [16]byte
	for i := range src {
		c.block.Encrypt(scratch[:], c.decryptIV[:])
		in := src[i]
		dst[i] = in ^ scratch[0]
		copy(c.decryptIV[:15], c.decryptIV[1:])
		c.decryptIV[15] = in
	}
}

// EncryptWriter wraps w so every Write is encrypted before reaching the
// underlying connection.
type EncryptWriter struct {
	W io.Writer
	C *Cipher
}

func (e EncryptWriter) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	e.C.Encrypt(buf, p)
	return e.W.Write(buf)
}

// DecryptReader wraps r so every Read is decrypted after arriving from the
// underlying connection.
type DecryptReader struct {
	R io.Reader
	C *Cipher
}

func (d DecryptReader) Read(p []byte) (int, error) {
	n, err := d.R.Read(p)
	if n > 0 {
		d.C.Decrypt(p[:n], p[:n])
	}
	return n, err
}
