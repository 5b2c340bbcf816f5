// Package auth covers the protocol-level pieces of login identity: offline
// UUID derivation and DNS SRV server address resolution. Interactive
// account authentication (OAuth device-code flow, certificate fetch) is
// out of scope here; LoginData is deliberately a plain value so callers who
// do implement that flow elsewhere can populate it themselves.
package auth

import (
	"crypto/md5"
	"fmt"
	"net"
	"strconv"

	"github.com/go-mclib/protocol/netstruct"
)

// LoginData is the identity a connection presents during login: a username
// and UUID (and, for online-mode play, a Mojang access token used only to
// compute the session-join hash — see package session).
type LoginData struct {
	Username    string
	UUID        string
	AccessToken string
}

// OfflineUUID derives the deterministic offline-mode player UUID vanilla
// servers assign an unauthenticated username: an MD5 hash of
// "OfflinePlayer:"+username, with the version nibble forced to 3 and the
// variant bits forced to RFC 4122, per the same derivation the vanilla
// server itself uses for offline players.
func OfflineUUID(username string) netstruct.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3f) | 0x80 // RFC 4122 variant
	return netstruct.UUID(sum)
}

// NewOfflineLoginData builds the LoginData for an unauthenticated
// connection, matching how vanilla servers in offline mode assign identity
// purely from the supplied username.
func NewOfflineLoginData(username string) LoginData {
	return LoginData{Username: username, UUID: OfflineUUID(username).String()}
}

// DefaultPort is the standard Java Edition server port, used when a SRV
// lookup finds nothing and the address carries no explicit port.
const DefaultPort = 25565

// ResolveServerAddress expands addr into a dialable host:port, consulting
// the server's _minecraft._tcp SRV record when addr has no explicit port
// — the same indirection vanilla clients use so an operator can point a
// bare domain at a server running on a nonstandard port.
func ResolveServerAddress(addr string) (host string, port uint16, err error) {
	if h, p, splitErr := net.SplitHostPort(addr); splitErr == nil {
		portNum, convErr := strconv.ParseUint(p, 10, 16)
		if convErr != nil {
			return "", 0, fmt.Errorf("auth: invalid port in %q: %w", addr, convErr)
		}
		return h, uint16(portNum), nil
	}

	_, srvs, srvErr := net.LookupSRV("minecraft", "tcp", addr)
	if srvErr == nil && len(srvs) > 0 {
		target := srvs[0].Target
		for len(target) > 0 && target[len(target)-1] == '.' {
			target = target[:len(target)-1]
		}
		return target, srvs[0].Port, nil
	}

	return addr, DefaultPort, nil
}
