package client

import (
	"bytes"
	"sync"

	"github.com/go-mclib/protocol/chunk"
	"github.com/go-mclib/protocol/javaprotocol"
	"github.com/go-mclib/protocol/schema/v765"
)

// overworld dimension geometry (1.18+): y in [-64, 319], 24 sections of 16
// blocks each. Callers targeting a different dimension should construct
// World directly rather than via NewWorld.
const (
	OverworldMinY        = -64
	OverworldNumSections = 24
)

func chunkKey(x, z int32) int64 { return int64(x)<<32 | int64(uint32(z)) }

// World caches loaded chunk columns for one Play-state connection, fed by
// RunPlay's dispatch of S2CChunkDataAndUpdateLight packets.
type World struct {
	mu sync.RWMutex

	Chunks      map[int64]*chunk.ChunkColumn
	MinY        int32
	NumSections int

	// EntityMetadata caches each entity's most recently seen tracked-field
	// set, decoded via the schema-driven types.Registry engine (the payload
	// shape isn't known until the per-entry type tag is read).
	EntityMetadata map[int32][]any
}

// NewWorld returns an empty World sized for the overworld.
func NewWorld() *World {
	return &World{
		Chunks:         make(map[int64]*chunk.ChunkColumn),
		MinY:           OverworldMinY,
		NumSections:    OverworldNumSections,
		EntityMetadata: make(map[int32][]any),
	}
}

// GetEntityMetadata returns the most recently decoded metadata entries for
// entityID, or nil if none have been seen.
func (w *World) GetEntityMetadata(entityID int32) []any {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.EntityMetadata[entityID]
}

func (w *World) handleChunkData(d *v765.S2CChunkDataAndUpdateLightData) error {
	body := bytes.NewReader([]byte(d.Rest))
	col, _, err := chunk.DecodeChunkDataPacket(body, int32(d.ChunkX), int32(d.ChunkZ), w.MinY, w.NumSections)
	if err != nil {
		return err
	}
	if err := col.ApplyLightData(body); err != nil {
		return err
	}

	w.mu.Lock()
	w.Chunks[chunkKey(int32(d.ChunkX), int32(d.ChunkZ))] = col
	w.mu.Unlock()
	return nil
}

// GetChunk returns the loaded column at (chunkX, chunkZ), or nil.
func (w *World) GetChunk(chunkX, chunkZ int32) *chunk.ChunkColumn {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.Chunks[chunkKey(chunkX, chunkZ)]
}

// GetBlockState returns the block state at world coordinates, or 0 (air) if
// the containing chunk isn't loaded.
func (w *World) GetBlockState(x int, y int32, z int) int32 {
	col := w.GetChunk(int32(x>>4), int32(z>>4))
	if col == nil {
		return 0
	}
	return col.GetBlockState(x, y, z)
}

// Forget discards a loaded chunk, e.g. on Forget Level Chunk.
func (w *World) Forget(chunkX, chunkZ int32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.Chunks, chunkKey(chunkX, chunkZ))
}

// Len returns the number of loaded chunk columns.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.Chunks)
}

// RunPlay answers keep-alives and pings, caches chunk columns into world,
// and forwards every other play-state packet to onPacket. It returns when
// the connection errors, is disconnected by the server, or is asked to
// transition back to configuration (Start Configuration), in which case it
// acknowledges the transition and returns nil.
func (c *Client) RunPlay(world *World, onPacket func(*javaprotocol.WirePacket)) error {
	for {
		pkt, err := c.ReadWirePacket()
		if err != nil {
			return err
		}
		switch pkt.PacketID {
		case v765.S2CKeepAlivePlay.ID:
			var ka v765.S2CKeepAlivePlayData
			if err := pkt.ReadInto(&ka); err != nil {
				return err
			}
			if err := c.WritePacket(&v765.C2SKeepAlivePlayData{KeepAliveID: ka.KeepAliveID}); err != nil {
				return err
			}
		case v765.S2CPingPlay.ID:
			// Server-initiated; echo the ID back verbatim. Latency tracking
			// belongs to the status-mode ping flow, which pairs NotePing with
			// the pong it solicited.
			var ping v765.S2CPingPlayData
			if err := pkt.ReadInto(&ping); err != nil {
				return err
			}
			if err := c.WritePacket(&v765.C2SPongPlayData{ID: ping.ID}); err != nil {
				return err
			}
		case v765.S2CChunkDataAndUpdateLight.ID:
			var d v765.S2CChunkDataAndUpdateLightData
			if err := pkt.ReadInto(&d); err != nil {
				return err
			}
			if world != nil {
				if err := world.handleChunkData(&d); err != nil {
					c.Logger.Printf("client: failed to parse chunk (%d, %d): %v", d.ChunkX, d.ChunkZ, err)
				}
			}
		case v765.S2CSetEntityMetadata.ID:
			var d v765.S2CSetEntityMetadataData
			if err := pkt.ReadInto(&d); err != nil {
				return err
			}
			if world != nil {
				entries, err := d.Metadata()
				if err != nil {
					c.Logger.Printf("client: failed to parse entity metadata for entity %d: %v", d.EntityID, err)
				} else {
					world.mu.Lock()
					world.EntityMetadata[int32(d.EntityID)] = entries
					world.mu.Unlock()
				}
			}
		case v765.S2CStartConfiguration.ID:
			if err := c.WritePacket(&v765.C2SConfigurationAcknowledgedData{}); err != nil {
				return err
			}
			c.SetState(javaprotocol.StateConfiguration)
			return nil
		case v765.S2CDisconnectPlay.ID:
			var d v765.S2CDisconnectPlayData
			_ = pkt.ReadInto(&d)
			return &DisconnectError{Reason: string(d.Reason)}
		default:
			if onPacket != nil {
				onPacket(pkt)
			}
		}
	}
}

// DisconnectError reports a server-initiated Disconnect (play) packet.
type DisconnectError struct{ Reason string }

func (e *DisconnectError) Error() string { return "client: disconnected: " + e.Reason }
