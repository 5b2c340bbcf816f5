// Package client ties the transport (javaprotocol), the wire schema
// (schema/v765) and identity (javaprotocol/auth, crypto, session) together
// into the connection sequence every caller needs: dial, handshake, login
// (with optional online-mode encryption), ride out configuration, and land
// in play with keep-alives already being answered. Gameplay-level concerns
// — entity tracking, world state, chat UX — are out of scope; callers read
// WirePackets off Client.ReadWirePacket themselves from there.
package client

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/go-mclib/protocol/javaprotocol"
	"github.com/go-mclib/protocol/javaprotocol/auth"
	"github.com/go-mclib/protocol/javaprotocol/crypto"
	"github.com/go-mclib/protocol/javaprotocol/session"
	ns "github.com/go-mclib/protocol/netstruct"
	"github.com/go-mclib/protocol/schema/v765"
)

// Client is one established (or establishing) connection to a Java Edition
// server.
type Client struct {
	*javaprotocol.TCPClient

	Address    string
	LoginData  auth.LoginData
	OnlineMode bool
	Brand      string

	Logger *log.Logger

	session *session.Client
}

// New returns an unconnected Client for address, authenticating as
// loginData. For offline-mode connections, use auth.NewOfflineLoginData.
func New(address string, loginData auth.LoginData, onlineMode bool) *Client {
	return &Client{
		TCPClient:  javaprotocol.NewTCPClient(),
		Address:    address,
		LoginData:  loginData,
		OnlineMode: onlineMode,
		Brand:      "go-mclib",
		Logger:     log.New(os.Stdout, "", log.LstdFlags),
		session:    session.NewClient(),
	}
}

// Dial resolves c.Address (including a DNS SRV lookup for bare domains) and
// opens the TCP connection, leaving the protocol in the handshaking state.
func (c *Client) Dial() error {
	host, port, err := auth.ResolveServerAddress(c.Address)
	if err != nil {
		return fmt.Errorf("client: resolve %q: %w", c.Address, err)
	}
	return c.TCPClient.Connect("tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
}

// Login drives the connection through handshake and login, transparently
// handling encryption (if the server requests it) and compression, and
// returns once the connection has reached the configuration state.
func (c *Client) Login(ctx context.Context) error {
	host, portStr := c.ResolvedAddr()
	portNum, _ := strconv.Atoi(portStr)

	if err := c.WritePacket(&v765.C2SHandshakeData{
		ProtocolVersion: 765,
		ServerAddress:   ns.String(host),
		ServerPort:      ns.Uint16(portNum),
		NextState:       v765.NextStateLogin,
	}); err != nil {
		return fmt.Errorf("client: handshake: %w", err)
	}
	c.SetState(javaprotocol.StateLogin)

	playerUUID, err := ns.UUIDFromString(c.LoginData.UUID)
	if err != nil {
		return fmt.Errorf("client: parse login uuid: %w", err)
	}
	if err := c.WritePacket(&v765.C2SLoginStartData{
		Name:       ns.String(c.LoginData.Username),
		PlayerUUID: playerUUID,
	}); err != nil {
		return fmt.Errorf("client: login start: %w", err)
	}

	for {
		pkt, err := c.ReadWirePacket()
		if err != nil {
			return fmt.Errorf("client: read during login: %w", err)
		}
		switch pkt.PacketID {
		case v765.S2CEncryptionRequest.ID:
			var req v765.S2CEncryptionRequestData
			if err := pkt.ReadInto(&req); err != nil {
				return fmt.Errorf("client: parse encryption request: %w", err)
			}
			if err := c.handleEncryptionRequest(ctx, req); err != nil {
				return err
			}
		case v765.S2CSetCompression.ID:
			var sc v765.S2CSetCompressionData
			if err := pkt.ReadInto(&sc); err != nil {
				return fmt.Errorf("client: parse set compression: %w", err)
			}
			c.SetCompressionThreshold(int(sc.Threshold))
		case v765.S2CLoginSuccess.ID:
			var ls v765.S2CLoginSuccessData
			if err := pkt.ReadInto(&ls); err != nil {
				return fmt.Errorf("client: parse login success: %w", err)
			}
			if err := c.WritePacket(&v765.C2SLoginAcknowledgedData{}); err != nil {
				return fmt.Errorf("client: login acknowledged: %w", err)
			}
			c.SetState(javaprotocol.StateConfiguration)
			return nil
		case v765.S2CLoginDisconnect.ID:
			var d v765.S2CLoginDisconnectData
			_ = pkt.ReadInto(&d)
			return fmt.Errorf("client: disconnected during login: %s", d.Reason)
		}
	}
}

func (c *Client) handleEncryptionRequest(ctx context.Context, req v765.S2CEncryptionRequestData) error {
	enc := c.Conn().Encryption()
	sharedSecret, err := enc.GenerateSharedSecret()
	if err != nil {
		return fmt.Errorf("client: generate shared secret: %w", err)
	}
	encSecret, err := enc.EncryptWithPublicKey([]byte(req.PublicKey), sharedSecret)
	if err != nil {
		return fmt.Errorf("client: encrypt shared secret: %w", err)
	}
	encToken, err := enc.EncryptWithPublicKey([]byte(req.PublicKey), []byte(req.VerifyToken))
	if err != nil {
		return fmt.Errorf("client: encrypt verify token: %w", err)
	}

	if c.OnlineMode {
		hash := crypto.ServerHash(string(req.ServerID), sharedSecret, []byte(req.PublicKey))
		if err := c.session.Join(ctx, c.LoginData.AccessToken, c.LoginData.UUID, hash); err != nil {
			return fmt.Errorf("client: session join: %w", err)
		}
	}

	if err := c.WritePacket(&v765.C2SEncryptionResponseData{
		SharedSecret: encSecret,
		VerifyToken:  encToken,
	}); err != nil {
		return fmt.Errorf("client: encryption response: %w", err)
	}
	return enc.EnableEncryption()
}

// RunConfiguration sends Client Information (and the brand plugin message
// when Brand is set), then answers keep-alives, answers Select Known Packs
// with an empty set, and forwards every other configuration-state packet
// (registry data, pings, etc.) to onPacket. It returns once the server
// signals Finish Configuration, after acknowledging it and transitioning to
// play.
func (c *Client) RunConfiguration(locale string, viewDistance int8, onPacket func(*javaprotocol.WirePacket)) error {
	if err := c.WritePacket(&v765.C2SClientInformationData{
		Locale:         ns.String(locale),
		ViewDistance:   ns.Byte(viewDistance),
		ChatMode:       0,
		ChatColors:     true,
		MainHand:       1,
		ParticleStatus: 0,
	}); err != nil {
		return fmt.Errorf("client: client information: %w", err)
	}

	if c.Brand != "" {
		var brand bytes.Buffer
		if err := ns.String(c.Brand).Encode(&brand); err != nil {
			return fmt.Errorf("client: encode brand: %w", err)
		}
		if err := c.WritePacket(&v765.C2SPluginMessageConfigurationData{
			Channel: "minecraft:brand",
			Data:    ns.RawRest(brand.Bytes()),
		}); err != nil {
			return fmt.Errorf("client: brand plugin message: %w", err)
		}
	}

	for {
		pkt, err := c.ReadWirePacket()
		if err != nil {
			return fmt.Errorf("client: read during configuration: %w", err)
		}
		switch pkt.PacketID {
		case v765.S2CKeepAliveConfiguration.ID:
			var ka v765.S2CKeepAliveConfigurationData
			if err := pkt.ReadInto(&ka); err != nil {
				return fmt.Errorf("client: parse keep alive: %w", err)
			}
			if err := c.WritePacket(&v765.C2SKeepAliveConfigurationData{KeepAliveID: ka.KeepAliveID}); err != nil {
				return fmt.Errorf("client: echo keep alive: %w", err)
			}
		case v765.S2CSelectKnownPacks.ID:
			// A headless client caches no packs; answer with an empty set so
			// the server sends every registry in full.
			if err := c.WritePacket(&v765.C2SSelectKnownPacksData{}); err != nil {
				return fmt.Errorf("client: select known packs: %w", err)
			}
		case v765.S2CFinishConfiguration.ID:
			if err := c.WritePacket(&v765.C2SFinishConfigurationData{}); err != nil {
				return fmt.Errorf("client: acknowledge finish configuration: %w", err)
			}
			c.SetState(javaprotocol.StatePlay)
			return nil
		default:
			if onPacket != nil {
				onPacket(pkt)
			}
		}
	}
}
