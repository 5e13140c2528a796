// Package marble talks to the World Labs Marble API that turns a single
// image into a 3D splat scene. The relay only forwards requests and relays
// upstream JSON verbatim; it never interprets generation results.
package marble

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.worldlabs.ai/marble/v1"

// ErrNoImageSource means a generation request named neither an uploaded
// media asset nor an image URI.
var ErrNoImageSource = errors.New("either mediaAssetId or imageUri required")

type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

type PrepareUploadRequest struct {
	FileName  string `json:"fileName"`
	Extension string `json:"extension"`
}

// PrepareUpload reserves a media asset slot for an image upload.
func (c *Client) PrepareUpload(ctx context.Context, apiKey string, req PrepareUploadRequest) ([]byte, int, error) {
	payload := map[string]any{
		"file_name": req.FileName,
		"extension": req.Extension,
		"kind":      "image",
	}
	return c.do(ctx, http.MethodPost, "/media-assets:prepare_upload", apiKey, payload)
}

type GenerateWorldRequest struct {
	MediaAssetID string `json:"mediaAssetId"`
	ImageURI     string `json:"imageUri"`
	TextPrompt   string `json:"textPrompt"`
}

// GenerateWorld kicks off scene generation from an uploaded asset or a URI.
func (c *Client) GenerateWorld(ctx context.Context, apiKey string, req GenerateWorldRequest) ([]byte, int, error) {
	prompt := map[string]any{"type": "image"}
	switch {
	case req.MediaAssetID != "":
		prompt["image_prompt"] = map[string]any{
			"source":         "media_asset",
			"media_asset_id": req.MediaAssetID,
		}
	case req.ImageURI != "":
		prompt["image_prompt"] = map[string]any{
			"source": "uri",
			"uri":    req.ImageURI,
		}
	default:
		return nil, 0, ErrNoImageSource
	}
	if req.TextPrompt != "" {
		prompt["text_prompt"] = req.TextPrompt
	}

	payload := map[string]any{
		"display_name": "Splat World Session",
		"world_prompt": prompt,
		"model":        "Marble 0.1-mini",
	}
	return c.do(ctx, http.MethodPost, "/worlds:generate", apiKey, payload)
}

// GetOperation polls a pending generation operation.
func (c *Client) GetOperation(ctx context.Context, apiKey, operationID string) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, "/operations/"+operationID, apiKey, nil)
}

// GetWorld fetches the detail of a finished world.
func (c *Client) GetWorld(ctx context.Context, apiKey, worldID string) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, "/worlds/"+worldID, apiKey, nil)
}

func (c *Client) do(ctx context.Context, method, path, apiKey string, payload any) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("WLT-Api-Key", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("call marble api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read marble response: %w", err)
	}
	return data, resp.StatusCode, nil
}
