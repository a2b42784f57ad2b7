package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiBase = "https://api.mux.com"

// Client talks to the Mux Video REST API with token-pair basic auth.
type Client struct {
	TokenID     string
	TokenSecret string
	HTTPClient  *http.Client
}

func NewClient(tokenID, tokenSecret string) *Client {
	return &Client{
		TokenID:     tokenID,
		TokenSecret: tokenSecret,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type DirectUpload struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateDirectUpload asks Mux for a one-time direct upload URL. passthrough
// comes back on every webhook for the resulting asset, which is how the
// webhook handler finds the lesson to update.
func (c *Client) CreateDirectUpload(ctx context.Context, passthrough, corsOrigin string) (*DirectUpload, error) {
	body := map[string]interface{}{
		"cors_origin": corsOrigin,
		"new_asset_settings": map[string]interface{}{
			"playback_policy": []string{"signed"},
			"passthrough":     passthrough,
		},
	}

	var out struct {
		Data DirectUpload `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/video/v1/uploads", body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteAsset removes a video asset from Mux (lesson deleted, or processing
// left an orphan behind).
func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	return c.do(ctx, http.MethodDelete, "/video/v1/assets/"+assetID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.TokenID == "" || c.TokenSecret == "" {
		return fmt.Errorf("mux credentials not configured")
	}

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiBase+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.TokenID, c.TokenSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mux api %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
