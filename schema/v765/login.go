package v765

import (
	jp "github.com/go-mclib/protocol/javaprotocol"
	ns "github.com/go-mclib/protocol/netstruct"
)

// C2SLoginStart begins the login sequence with the client's chosen
// username and (offline-derived or authenticated) UUID.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Start
var C2SLoginStart = jp.NewPacket[C2SLoginStartData](jp.StateLogin, jp.C2S, 0x00)

type C2SLoginStartData struct {
	Name       ns.String
	PlayerUUID ns.UUID
}

// S2CEncryptionRequest asks the client to generate a shared secret and
// encrypt it under the server's public key.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Request
var S2CEncryptionRequest = jp.NewPacket[S2CEncryptionRequestData](jp.StateLogin, jp.S2C, 0x01)

type S2CEncryptionRequestData struct {
	ServerID    ns.String
	PublicKey   ns.ByteArray
	VerifyToken ns.ByteArray
}

// C2SEncryptionResponse carries the client's RSA-encrypted shared secret
// and verify token back to the server; the server checks the latter before
// flipping its own side of the connection over to AES.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Response
var C2SEncryptionResponse = jp.NewPacket[C2SEncryptionResponseData](jp.StateLogin, jp.C2S, 0x01)

type C2SEncryptionResponseData struct {
	SharedSecret ns.ByteArray
	VerifyToken  ns.ByteArray
}

// S2CSetCompression announces the compression threshold the rest of the
// connection (from this packet onward, any state) must honor.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Set_Compression
var S2CSetCompression = jp.NewPacket[S2CSetCompressionData](jp.StateLogin, jp.S2C, 0x03)

type S2CSetCompressionData struct {
	Threshold ns.VarInt
}

// LoginProperty is one signed profile property (e.g. "textures") attached
// to a Login Success packet.
type LoginProperty struct {
	Name      ns.String
	Value     ns.String
	Signature ns.PrefixedOptional[ns.String]
}

// S2CLoginSuccess completes login in online mode (and, depending on server
// configuration, offline mode too); the client replies with Login
// Acknowledged and the connection moves to configuration.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Success
var S2CLoginSuccess = jp.NewPacket[S2CLoginSuccessData](jp.StateLogin, jp.S2C, 0x02)

type S2CLoginSuccessData struct {
	UUID       ns.UUID
	Username   ns.String
	Properties ns.PrefixedArray[LoginProperty]
}

// C2SLoginAcknowledged switches the connection state to configuration; it
// carries no payload.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Acknowledged
var C2SLoginAcknowledged = jp.NewPacket[C2SLoginAcknowledgedData](jp.StateLogin, jp.C2S, 0x03)

type C2SLoginAcknowledgedData struct{}

// S2CLoginDisconnect carries a JSON chat-component reason the server
// refused this login.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Disconnect
var S2CLoginDisconnect = jp.NewPacket[S2CLoginDisconnectData](jp.StateLogin, jp.S2C, 0x00)

type S2CLoginDisconnectData struct {
	Reason ns.String
}
