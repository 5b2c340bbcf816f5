package client

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-mclib/protocol/javaprotocol"
	"github.com/go-mclib/protocol/javaprotocol/auth"
	ns "github.com/go-mclib/protocol/netstruct"
	"github.com/go-mclib/protocol/schema/v765"
)

// PingResult is one status round trip: the server-list JSON and the
// measured ping/pong latency.
type PingResult struct {
	ResponseJSON string
	Latency      time.Duration
}

// Ping opens a throwaway status-state connection to address, requests the
// server-list JSON, measures round-trip latency with a Ping Request, and
// closes the socket. timeout bounds the whole exchange; on expiry the
// socket is torn down and the deadline error surfaces to the caller.
func Ping(address string, timeout time.Duration) (*PingResult, error) {
	host, port, err := auth.ResolveServerAddress(address)
	if err != nil {
		return nil, fmt.Errorf("client: resolve %q: %w", address, err)
	}

	tc := javaprotocol.NewTCPClient()
	if err := tc.Connect("tcp", net.JoinHostPort(host, strconv.Itoa(int(port)))); err != nil {
		return nil, fmt.Errorf("client: dial %q: %w", address, err)
	}
	defer tc.Close()
	if timeout > 0 {
		if err := tc.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
	}

	if err := tc.WritePacket(&v765.C2SHandshakeData{
		ProtocolVersion: 765,
		ServerAddress:   ns.String(host),
		ServerPort:      ns.Uint16(port),
		NextState:       v765.NextStateStatus,
	}); err != nil {
		return nil, fmt.Errorf("client: handshake: %w", err)
	}
	tc.SetState(javaprotocol.StateStatus)

	if err := tc.WritePacket(&v765.C2SStatusRequestData{}); err != nil {
		return nil, fmt.Errorf("client: status request: %w", err)
	}

	var result PingResult
	for {
		pkt, err := tc.ReadWirePacket()
		if err != nil {
			return nil, fmt.Errorf("client: read status: %w", err)
		}
		switch pkt.PacketID {
		case v765.S2CStatusResponse.ID:
			var sr v765.S2CStatusResponseData
			if err := pkt.ReadInto(&sr); err != nil {
				return nil, fmt.Errorf("client: parse status response: %w", err)
			}
			result.ResponseJSON = string(sr.Response)
			tc.NotePing()
			if err := tc.WritePacket(&v765.C2SPingRequestData{Payload: 0}); err != nil {
				return nil, fmt.Errorf("client: ping request: %w", err)
			}
		case v765.S2CPongResponse.ID:
			result.Latency = tc.RecordPong()
			return &result, nil
		}
	}
}
