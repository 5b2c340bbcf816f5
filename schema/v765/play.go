package v765

import (
	"io"

	jp "github.com/go-mclib/protocol/javaprotocol"
	ns "github.com/go-mclib/protocol/netstruct"
)

// C2SKeepAlivePlay/S2CKeepAlivePlay mirror the configuration-state
// keep-alive: the client must echo the server's random ID back unchanged.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Clientbound_Keep_Alive_(play)
var C2SKeepAlivePlay = jp.NewPacket[C2SKeepAlivePlayData](jp.StatePlay, jp.C2S, 0x1c)

type C2SKeepAlivePlayData struct {
	KeepAliveID ns.Long
}

var S2CKeepAlivePlay = jp.NewPacket[S2CKeepAlivePlayData](jp.StatePlay, jp.S2C, 0x26)

type S2CKeepAlivePlayData struct {
	KeepAliveID ns.Long
}

// C2SPongPlay answers an S2CPingPlay; the client reuses the server's ID
// unchanged.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Pong_(play)
var C2SPongPlay = jp.NewPacket[C2SPongPlayData](jp.StatePlay, jp.C2S, 0x20)

type C2SPongPlayData struct {
	ID ns.Long
}

// S2CPingPlay asks the client to reply with Pong carrying the same ID.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Ping_(play)
var S2CPingPlay = jp.NewPacket[S2CPingPlayData](jp.StatePlay, jp.S2C, 0x35)

type S2CPingPlayData struct {
	ID ns.Long
}

// S2CStartConfiguration signals a server-initiated transfer back to
// configuration state (e.g. to push updated registry data mid-game).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Start_Configuration
var S2CStartConfiguration = jp.NewPacket[S2CStartConfigurationData](jp.StatePlay, jp.S2C, 0x68)

type S2CStartConfigurationData struct{}

// C2SConfigurationAcknowledged confirms a Start Configuration; only after
// this does the connection actually re-enter the configuration state.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Acknowledge_Configuration
var C2SConfigurationAcknowledged = jp.NewPacket[C2SConfigurationAcknowledgedData](jp.StatePlay, jp.C2S, 0x0b)

type C2SConfigurationAcknowledgedData struct{}

// C2SChatMessage sends an unsigned chat message. Real vanilla servers with
// enforce-secure-profile enabled require the signed variant instead; chat
// signing is out of scope here.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Chat_Message
var C2SChatMessage = jp.NewPacket[C2SChatMessageData](jp.StatePlay, jp.C2S, 0x07)

type C2SChatMessageData struct {
	Message      ns.String
	Timestamp    ns.Long
	Salt         ns.Long
	Signature    ns.PrefixedOptional[ns.ByteArray]
	MessageCount ns.VarInt
	Acknowledged AcknowledgedMessages
}

// AcknowledgedMessages is the fixed 20-bit "last seen" acknowledgment
// bitset vanilla attaches to every chat message, packed into its minimum 3
// whole bytes — fixed-size (unlike ns.FixedBitSet, whose length is a
// runtime parameter) so it decodes correctly as a zero-valued struct field.
type AcknowledgedMessages [3]byte

func (v AcknowledgedMessages) Encode(w io.Writer) error {
	_, err := w.Write(v[:])
	return err
}

func (v *AcknowledgedMessages) Decode(r io.Reader) error {
	_, err := io.ReadFull(r, v[:])
	return err
}

// S2CChunkDataAndUpdateLight carries one chunk column's block/biome data
// plus initial lighting. Everything past ChunkX/ChunkZ — heightmaps,
// section data, block entities, light masks and arrays — is handed to the
// chunk package's DecodeChunkDataPacket/ApplyLightData rather than decoded
// here, since their shape is driven by the paletted-container schema, not
// fixed netstruct fields; Rest carries that raw remainder.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Chunk_Data_and_Update_Light
var S2CChunkDataAndUpdateLight = jp.NewPacket[S2CChunkDataAndUpdateLightData](jp.StatePlay, jp.S2C, 0x27)

type S2CChunkDataAndUpdateLightData struct {
	ChunkX ns.Int
	ChunkZ ns.Int
	Rest   ns.RawRest
}

// S2CDisconnectPlay carries a JSON chat-component disconnect reason.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Disconnect_(play)
var S2CDisconnectPlay = jp.NewPacket[S2CDisconnectPlayData](jp.StatePlay, jp.S2C, 0x1d)

type S2CDisconnectPlayData struct {
	Reason ns.String
}
