package javaprotocol

import (
	"bytes"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/go-mclib/protocol/stream"
	"github.com/go-mclib/protocol/varint"
)

// TCPClient is the low-level transport for one Java Edition connection: it
// owns the raw socket and the stream pipeline (encryption, framing,
// compression) but knows nothing about packet semantics beyond dispatching
// WirePacket{ID, Body} pairs.
type TCPClient struct {
	conn net.Conn

	mu        sync.Mutex
	state     State
	framer    *stream.Framer
	compress  *stream.Compressor
	cipher    *stream.Cipher
	rawReader io.Reader
	rawWriter io.Writer

	debug bool
	log   *log.Logger

	resolvedHost string
	resolvedPort string

	lastPingSent time.Time
	latency      time.Duration
}

// NewTCPClient returns an unconnected client in the handshaking state with
// compression disabled.
func NewTCPClient() *TCPClient {
	return &TCPClient{
		state:    StateHandshaking,
		framer:   stream.NewFramer(),
		compress: stream.NewCompressor(),
		log:      log.Default(),
	}
}

// Connect dials addr, which must be host:port (a bare host is not expanded
// to the default port), and readies the client for a handshake.
func (c *TCPClient) Connect(network, addr string) error {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return err
	}
	c.conn = conn
	c.rawReader = conn
	c.rawWriter = conn
	host, port, err := net.SplitHostPort(addr)
	if err == nil {
		c.resolvedHost, c.resolvedPort = host, port
	}
	return nil
}

// ResolvedAddr returns the host and port Connect dialed.
func (c *TCPClient) ResolvedAddr() (host, port string) { return c.resolvedHost, c.resolvedPort }

// EnableDebug turns on verbose packet logging.
func (c *TCPClient) EnableDebug() { c.debug = true }

// SetLogger overrides the default logger used for debug output.
func (c *TCPClient) SetLogger(l *log.Logger) { c.log = l }

// State returns the client's current connection state.
func (c *TCPClient) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetState transitions the connection to s, resetting the frame splitter so
// a state boundary can never be straddled by a stray partial frame left
// over from the previous state's codec.
func (c *TCPClient) SetState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.framer.Reset()
}

// SetCompressionThreshold enables (threshold >= 0) or disables (negative)
// the zlib compression layer, per the server's Set Compression packet.
func (c *TCPClient) SetCompressionThreshold(threshold int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compress.Threshold = threshold
}

// Conn exposes the connection-level accessors (currently just Encryption)
// that sit outside the packet read/write path.
func (c *TCPClient) Conn() *Connection { return &Connection{client: c} }

// installCipher switches both directions of the stream pipeline over to
// AES-128-CFB8 atomically, called once after the login encryption exchange
// completes.
func (c *TCPClient) installCipher(cipher *stream.Cipher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cipher = cipher
	c.rawReader = stream.DecryptReader{R: c.conn, C: cipher}
	c.rawWriter = stream.EncryptWriter{W: c.conn, C: cipher}
}

// WritePacket reflectively encodes pkt (a pointer to a struct registered via
// NewPacket) and sends it through compression, encryption and framing.
func (c *TCPClient) WritePacket(pkt any) error {
	id, fieldsBody, err := encodePacket(pkt)
	if err != nil {
		return err
	}
	var full bytes.Buffer
	if err := varint.WriteVarInt(byteWriter{&full}, id); err != nil {
		return err
	}
	full.Write(fieldsBody)

	c.mu.Lock()
	defer c.mu.Unlock()
	packed, err := c.compress.Pack(full.Bytes())
	if err != nil {
		return err
	}
	if c.debug {
		c.log.Printf("-> packet 0x%02x (%d bytes)", id, len(fieldsBody))
	}
	return stream.WriteFrame(c.rawWriter, packed)
}

// ReadWirePacket blocks until one full packet is decoded off the wire.
func (c *TCPClient) ReadWirePacket() (*WirePacket, error) {
	var payload []byte
	buf := make([]byte, 4096)
	for {
		c.mu.Lock()
		p, ok, err := c.framer.Next()
		c.mu.Unlock()
		if err != nil {
			return nil, err
		}
		if ok {
			payload = p
			break
		}
		n, err := c.rawReader.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.framer.Feed(buf[:n])
			c.mu.Unlock()
		}
		if err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	body, err := c.compress.Unpack(payload)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(body)
	id, _, err := varint.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	rest := body[len(body)-r.Len():]
	if c.debug {
		c.log.Printf("<- packet 0x%02x (%d bytes)", id, len(rest))
	}
	return &WirePacket{PacketID: id, Body: rest}, nil
}

// SetDeadline sets the read/write deadline on the underlying socket; used
// by one-shot exchanges (status ping) that need a hard timeout.
func (c *TCPClient) SetDeadline(t time.Time) error {
	if c.conn == nil {
		return nil
	}
	return c.conn.SetDeadline(t)
}

// Close closes the underlying socket.
func (c *TCPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// RecordPong updates latency tracking from a matched ping/pong pair.
func (c *TCPClient) RecordPong() time.Duration {
	c.latency = time.Since(c.lastPingSent)
	return c.latency
}

// NotePing records when a ping was sent so RecordPong can compute latency.
func (c *TCPClient) NotePing() { c.lastPingSent = time.Now() }

// Latency returns the most recently measured round-trip time.
func (c *TCPClient) Latency() time.Duration { return c.latency }

// Connection is the thin accessor object returned by TCPClient.Conn(),
// kept separate so connection-setup concerns (encryption) don't clutter
// the TCPClient method set used on every packet.
type Connection struct {
	client *TCPClient
}

// Encryption returns the encryption negotiation helper for this connection.
func (conn *Connection) Encryption() *Encryption { return &Encryption{client: conn.client} }

type byteWriter struct{ io.Writer }

func (b byteWriter) WriteByte(c byte) error {
	_, err := b.Write([]byte{c})
	return err
}
