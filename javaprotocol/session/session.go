// Package session implements the client side of the Mojang session-join
// handshake: after the client has derived the server ID hash (package
// crypto), it must report itself to Mojang's session server before the
// Minecraft server will let it join in online mode.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const joinEndpoint = "https://sessionserver.mojang.com/session/minecraft/join"

// Client is a minimal HTTP client for the session-join call. The standard
// library's net/http is sufficient here: this is a single JSON POST with no
// retry/backoff policy worth pulling a client library in for.
type Client struct {
	HTTPClient *http.Client
}

// NewClient returns a session Client using http.DefaultClient.
func NewClient() *Client {
	return &Client{HTTPClient: http.DefaultClient}
}

type joinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

// Join reports to Mojang that accessToken's profile is connecting to the
// server identified by serverHash (crypto.ServerHash's output), so the
// server's own hasJoined check against the same session server succeeds.
func (c *Client) Join(ctx context.Context, accessToken, profileID, serverHash string) error {
	body, err := json.Marshal(joinRequest{
		AccessToken:     accessToken,
		SelectedProfile: profileID,
		ServerID:        serverHash,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("session: join failed with status %s", resp.Status)
	}
	return nil
}
