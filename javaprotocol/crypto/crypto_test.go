package crypto

import "testing"

// The three hashes every protocol implementation checks itself against:
// digests of the bare name with empty secret and key, including the
// negative (two's-complement) and leading-zero-stripped cases.
func TestServerHashKnownVectors(t *testing.T) {
	cases := []struct {
		serverID string
		want     string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}
	for _, c := range cases {
		if got := ServerHash(c.serverID, nil, nil); got != c.want {
			t.Errorf("ServerHash(%q) = %s, want %s", c.serverID, got, c.want)
		}
	}
}

func TestServerHashUsesAllInputs(t *testing.T) {
	base := ServerHash("", []byte{1, 2, 3}, []byte{4, 5, 6})
	if ServerHash("", []byte{1, 2, 3}, []byte{4, 5, 7}) == base {
		t.Errorf("hash should change with the public key")
	}
	if ServerHash("", []byte{9, 2, 3}, []byte{4, 5, 6}) == base {
		t.Errorf("hash should change with the shared secret")
	}
}
