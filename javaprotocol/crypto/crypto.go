// Package crypto implements the Mojang session-server hash used during
// online-mode login, the one cryptographic primitive the protocol itself
// defines beyond standard AES/RSA.
package crypto

import (
	"crypto/sha1"
	"math/big"
)

// ServerHash computes the "server ID hash" the client sends to Mojang's
// session-join endpoint and the server independently recomputes to verify
// it via hasJoined: SHA-1(serverID || sharedSecret || publicKey),
// reinterpreted as a signed two's-complement big integer and rendered as
// lowercase hex (with a leading '-' when negative) — notoriously not the
// same as a plain hex digest of the raw SHA-1 bytes.
func ServerHash(serverID string, sharedSecret, publicKey []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKey)
	digest := h.Sum(nil)

	negative := digest[0]&0x80 != 0
	if negative {
		digest = twosComplement(digest)
	}
	n := new(big.Int).SetBytes(digest)
	hexStr := n.Text(16)
	if negative {
		return "-" + hexStr
	}
	return hexStr
}

func twosComplement(b []byte) []byte {
	out := make([]byte, len(b))
	carry := true
	for i := len(b) - 1; i >= 0; i-- {
		out[i] = ^b[i]
		if carry {
			out[i]++
			carry = out[i] == 0
		}
	}
	return out
}
