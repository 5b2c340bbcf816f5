package v765

import (
	jp "github.com/go-mclib/protocol/javaprotocol"
	ns "github.com/go-mclib/protocol/netstruct"
)

// C2SStatusRequest asks the server for its status JSON; carries no payload.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Request
var C2SStatusRequest = jp.NewPacket[C2SStatusRequestData](jp.StateStatus, jp.C2S, 0x00)

type C2SStatusRequestData struct{}

// S2CStatusResponse carries the server-list JSON (version, player counts,
// MOTD, favicon).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Response
var S2CStatusResponse = jp.NewPacket[S2CStatusResponseData](jp.StateStatus, jp.S2C, 0x00)

type S2CStatusResponseData struct {
	Response ns.String
}

// C2SPingRequest carries an arbitrary payload the server echoes back
// verbatim, used to measure round-trip latency.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Ping_Request_(status)
var C2SPingRequest = jp.NewPacket[C2SPingRequestData](jp.StateStatus, jp.C2S, 0x01)

type C2SPingRequestData struct {
	Payload ns.Long
}

// S2CPongResponse echoes the Ping Request payload.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Pong_Response_(status)
var S2CPongResponse = jp.NewPacket[S2CPongResponseData](jp.StateStatus, jp.S2C, 0x01)

type S2CPongResponseData struct {
	Payload ns.Long
}
