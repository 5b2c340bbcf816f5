// Package v765 declares the concrete packet catalogue for protocol version
// 765 (1.20.4-era numbering retained here as the baseline; packet IDs below
// follow the modern post-configuration-split layout described in the
// protocol documentation), wired to the netstruct value types and
// registered against the javaprotocol transport via jp.NewPacket, the same
// "var XPacket = jp.NewPacket(state, dir, id)" + "type XData struct{...}"
// pairing every hand-written packet schema in this ecosystem uses.
package v765

import (
	jp "github.com/go-mclib/protocol/javaprotocol"
	ns "github.com/go-mclib/protocol/netstruct"
)

// C2SHandshake is the very first packet of any connection: it carries the
// client's protocol version and declares which state (status or login) the
// connection proceeds to.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Handshake
var C2SHandshake = jp.NewPacket[C2SHandshakeData](jp.StateHandshaking, jp.C2S, 0x00)

type C2SHandshakeData struct {
	ProtocolVersion ns.VarInt
	ServerAddress   ns.String
	ServerPort      ns.Uint16
	NextState       ns.VarInt
}

// Next-state values a Handshake packet's NextState field may carry — the
// wire encodes these as bare integers, distinct from jp.State's own values.
const (
	NextStateStatus ns.VarInt = 1
	NextStateLogin  ns.VarInt = 2
)
