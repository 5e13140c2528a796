package marble

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type capturedRequest struct {
	method string
	path   string
	apiKey string
	body   map[string]any
}

// newUpstream fakes the Marble API and records what the client sent.
func newUpstream(t *testing.T, status int, reply string) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("WLT-Api-Key")
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			if err := json.Unmarshal(data, &captured.body); err != nil {
				t.Errorf("upstream got non-JSON body: %v", err)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second), captured
}

func TestPrepareUploadForwardsKeyAndKind(t *testing.T) {
	client, captured := newUpstream(t, http.StatusOK, `{"media_asset":{"media_asset_id":"ma-1"}}`)

	body, status, err := client.PrepareUpload(context.Background(), "key-123", PrepareUploadRequest{
		FileName:  "garden.jpg",
		Extension: "jpg",
	})
	if err != nil {
		t.Fatalf("PrepareUpload: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if string(body) != `{"media_asset":{"media_asset_id":"ma-1"}}` {
		t.Errorf("body not relayed verbatim: %s", body)
	}

	if captured.path != "/media-assets:prepare_upload" || captured.method != http.MethodPost {
		t.Errorf("called %s %s", captured.method, captured.path)
	}
	if captured.apiKey != "key-123" {
		t.Errorf("WLT-Api-Key = %q", captured.apiKey)
	}
	if captured.body["file_name"] != "garden.jpg" || captured.body["kind"] != "image" {
		t.Errorf("upload payload = %v", captured.body)
	}
}

func TestGenerateWorldFromMediaAsset(t *testing.T) {
	client, captured := newUpstream(t, http.StatusOK, `{"operation_id":"op-9"}`)

	_, _, err := client.GenerateWorld(context.Background(), "k", GenerateWorldRequest{
		MediaAssetID: "ma-7",
		TextPrompt:   "make it dusk",
	})
	if err != nil {
		t.Fatalf("GenerateWorld: %v", err)
	}

	if captured.path != "/worlds:generate" {
		t.Errorf("path = %q", captured.path)
	}
	prompt := captured.body["world_prompt"].(map[string]any)
	image := prompt["image_prompt"].(map[string]any)
	if image["source"] != "media_asset" || image["media_asset_id"] != "ma-7" {
		t.Errorf("image_prompt = %v", image)
	}
	if prompt["text_prompt"] != "make it dusk" {
		t.Errorf("text_prompt = %v", prompt["text_prompt"])
	}
	if captured.body["model"] != "Marble 0.1-mini" {
		t.Errorf("model = %v", captured.body["model"])
	}
}

func TestGenerateWorldFromURI(t *testing.T) {
	client, captured := newUpstream(t, http.StatusOK, `{}`)

	_, _, err := client.GenerateWorld(context.Background(), "k", GenerateWorldRequest{
		ImageURI: "https://img.example.com/a.png",
	})
	if err != nil {
		t.Fatalf("GenerateWorld: %v", err)
	}

	prompt := captured.body["world_prompt"].(map[string]any)
	image := prompt["image_prompt"].(map[string]any)
	if image["source"] != "uri" || image["uri"] != "https://img.example.com/a.png" {
		t.Errorf("image_prompt = %v", image)
	}
	if _, ok := prompt["text_prompt"]; ok {
		t.Errorf("text_prompt present without a prompt")
	}
}

func TestGenerateWorldWithoutSourceFails(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", time.Second)
	_, _, err := client.GenerateWorld(context.Background(), "k", GenerateWorldRequest{})
	if !errors.Is(err, ErrNoImageSource) {
		t.Fatalf("err = %v, want ErrNoImageSource", err)
	}
}

func TestGetOperationAndWorldPaths(t *testing.T) {
	client, captured := newUpstream(t, http.StatusOK, `{"done":false}`)

	if _, _, err := client.GetOperation(context.Background(), "k", "op-1"); err != nil {
		t.Fatalf("GetOperation: %v", err)
	}
	if captured.path != "/operations/op-1" || captured.method != http.MethodGet {
		t.Errorf("called %s %s", captured.method, captured.path)
	}

	if _, _, err := client.GetWorld(context.Background(), "k", "w-5"); err != nil {
		t.Fatalf("GetWorld: %v", err)
	}
	if captured.path != "/worlds/w-5" {
		t.Errorf("path = %q", captured.path)
	}
}

func TestUpstreamErrorStatusIsRelayed(t *testing.T) {
	client, _ := newUpstream(t, http.StatusForbidden, `{"error":{"message":"bad key"}}`)

	body, status, err := client.GetWorld(context.Background(), "bad", "w-1")
	if err != nil {
		t.Fatalf("GetWorld: %v", err)
	}
	if status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", status)
	}
	if string(body) != `{"error":{"message":"bad key"}}` {
		t.Errorf("body = %s", body)
	}
}
