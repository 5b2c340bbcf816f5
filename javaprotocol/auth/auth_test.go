package auth

import "testing"

func TestOfflineUUID(t *testing.T) {
	cases := []struct {
		username string
		want     string
	}{
		{"Steve", "5627dd98-e6be-3c21-b8a8-e92344183641"},
	}
	for _, c := range cases {
		got := OfflineUUID(c.username).String()
		if got != c.want {
			t.Errorf("OfflineUUID(%q) = %s, want %s", c.username, got, c.want)
		}
	}
}

func TestOfflineUUIDVersionAndVariant(t *testing.T) {
	u := OfflineUUID("anyone")
	if u[6]>>4 != 3 {
		t.Errorf("version nibble = %d, want 3", u[6]>>4)
	}
	if u[8]>>6 != 2 {
		t.Errorf("variant bits = %d, want 0b10", u[8]>>6)
	}
}

func TestNewOfflineLoginData(t *testing.T) {
	ld := NewOfflineLoginData("Steve")
	if ld.Username != "Steve" {
		t.Errorf("Username = %q", ld.Username)
	}
	if ld.UUID != "5627dd98-e6be-3c21-b8a8-e92344183641" {
		t.Errorf("UUID = %q", ld.UUID)
	}
	if ld.AccessToken != "" {
		t.Errorf("AccessToken should be empty for offline login")
	}
}

func TestResolveServerAddressExplicitPort(t *testing.T) {
	host, port, err := ResolveServerAddress("example.com:12345")
	if err != nil {
		t.Fatalf("ResolveServerAddress: %v", err)
	}
	if host != "example.com" || port != 12345 {
		t.Errorf("got (%s, %d), want (example.com, 12345)", host, port)
	}
}

func TestResolveServerAddressRejectsBadPort(t *testing.T) {
	if _, _, err := ResolveServerAddress("example.com:notaport"); err == nil {
		t.Fatalf("expected error for non-numeric port")
	}
}
