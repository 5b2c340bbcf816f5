package v765

import (
	jp "github.com/go-mclib/protocol/javaprotocol"
	ns "github.com/go-mclib/protocol/netstruct"
)

// C2SFinishConfiguration notifies the server that configuration has
// finished, switching the connection to play; carries no payload.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Acknowledge_Finish_Configuration
var C2SFinishConfiguration = jp.NewPacket[C2SFinishConfigurationData](jp.StateConfiguration, jp.C2S, 0x03)

type C2SFinishConfigurationData struct{}

// S2CFinishConfiguration tells the client configuration is done; the
// client should reply with Acknowledge Finish Configuration.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Finish_Configuration
var S2CFinishConfiguration = jp.NewPacket[S2CFinishConfigurationData](jp.StateConfiguration, jp.S2C, 0x03)

type S2CFinishConfigurationData struct{}

// C2SKeepAliveConfiguration echoes the server's keep-alive ID back
// unmodified; failing to respond within the vanilla timeout (30s) causes a
// server-side disconnect.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Serverbound_Keep_Alive_(configuration)
var C2SKeepAliveConfiguration = jp.NewPacket[C2SKeepAliveConfigurationData](jp.StateConfiguration, jp.C2S, 0x04)

type C2SKeepAliveConfigurationData struct {
	KeepAliveID ns.Long
}

// S2CKeepAliveConfiguration carries the random ID the client must echo.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Clientbound_Keep_Alive_(configuration)
var S2CKeepAliveConfiguration = jp.NewPacket[S2CKeepAliveConfigurationData](jp.StateConfiguration, jp.S2C, 0x04)

type S2CKeepAliveConfigurationData struct {
	KeepAliveID ns.Long
}

// C2SClientInformation reports client-side locale, render distance and
// accessibility settings once after joining.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Client_Information_(configuration)
var C2SClientInformation = jp.NewPacket[C2SClientInformationData](jp.StateConfiguration, jp.C2S, 0x00)

type C2SClientInformationData struct {
	Locale              ns.String
	ViewDistance        ns.Byte
	ChatMode            ns.VarInt
	ChatColors          ns.Boolean
	DisplayedSkinParts  ns.UnsignedByte
	MainHand            ns.VarInt
	EnableTextFiltering ns.Boolean
	AllowServerListings ns.Boolean
	ParticleStatus      ns.VarInt
}

// C2SPluginMessageConfiguration lets a client advertise a custom channel
// payload (e.g. the "minecraft:brand" handshake) during configuration.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Serverbound_Plugin_Message_(configuration)
var C2SPluginMessageConfiguration = jp.NewPacket[C2SPluginMessageConfigurationData](jp.StateConfiguration, jp.C2S, 0x02)

type C2SPluginMessageConfigurationData struct {
	Channel ns.Identifier
	Data    ns.RawRest
}

// S2CPluginMessageConfiguration is the clientbound counterpart.
var S2CPluginMessageConfiguration = jp.NewPacket[S2CPluginMessageConfigurationData](jp.StateConfiguration, jp.S2C, 0x01)

// S2CPluginMessageConfigurationData's Data length is inferred from the
// enclosing packet frame rather than self-prefixed, hence ns.RawRest instead
// of ns.ByteArray.
type S2CPluginMessageConfigurationData struct {
	Channel ns.Identifier
	Data    ns.RawRest
}

// S2CRegistryData is a single registry's worth of entries sent during
// configuration; its Entries payload is NBT and handled by callers via the
// generic schema engine rather than netstruct, since registry entry shape
// varies per registry.
var S2CRegistryData = jp.NewPacket[S2CRegistryDataData](jp.StateConfiguration, jp.S2C, 0x07)

type S2CRegistryDataData struct {
	RegistryID ns.Identifier
	Entries    ns.RawRest
}

// KnownPack identifies one data pack the client already has locally, so the
// server can skip re-sending that pack's registry contents.
type KnownPack struct {
	Namespace ns.String
	ID        ns.String
	Version   ns.String
}

// S2CSelectKnownPacks lists the data packs the server would like the client
// to confirm; the client answers with the subset it actually has (an empty
// set, for a headless client that caches nothing).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Clientbound_Known_Packs
var S2CSelectKnownPacks = jp.NewPacket[S2CSelectKnownPacksData](jp.StateConfiguration, jp.S2C, 0x0e)

type S2CSelectKnownPacksData struct {
	Packs ns.PrefixedArray[KnownPack]
}

// C2SSelectKnownPacks is the client's answer to S2CSelectKnownPacks.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Serverbound_Known_Packs
var C2SSelectKnownPacks = jp.NewPacket[C2SSelectKnownPacksData](jp.StateConfiguration, jp.C2S, 0x07)

type C2SSelectKnownPacksData struct {
	Packs ns.PrefixedArray[KnownPack]
}
