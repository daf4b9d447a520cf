package server

import (
	"encoding/json"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/curranmax/ImageFeatures/internal/imaging"
)

func postRPC(t *testing.T, s *Server, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.HTTPApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeHTTPResponse(t *testing.T, resp *http.Response) MCPResponse {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	var out MCPResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid response %q: %v", data, err)
	}
	return out
}

func TestHTTP_Ping(t *testing.T) {
	s := New(imaging.Options{})

	resp := postRPC(t, s, `{"jsonrpc":"2.0","id":7,"method":"ping"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	out := decodeHTTPResponse(t, resp)
	if out.ID != float64(7) || out.Error != nil {
		t.Errorf("got %+v", out)
	}
}

func TestHTTP_ToolsCall(t *testing.T) {
	s := New(imaging.Options{})
	imgPath := createTestImageFile(t, 30, 30, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	params, _ := json.Marshal(map[string]interface{}{
		"name":      "features_brightness",
		"arguments": map[string]interface{}{"path": imgPath},
	})
	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":` + string(params) + `}`

	out := decodeHTTPResponse(t, postRPC(t, s, body))
	if out.Error != nil {
		t.Fatalf("Unexpected error: %+v", out.Error)
	}
	result, ok := out.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result should be a map, got %T", out.Result)
	}
	content, ok := result["content"].([]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %v", result["content"])
	}
	text := content[0].(map[string]interface{})["text"].(string)
	if !strings.Contains(text, `"average_brightness"`) {
		t.Errorf("content text: got %s", text)
	}
}

func TestHTTP_ParseError(t *testing.T) {
	s := New(imaging.Options{})

	resp := postRPC(t, s, `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
	out := decodeHTTPResponse(t, resp)
	if out.Error == nil || out.Error.Code != -32700 {
		t.Errorf("got %+v, want code -32700", out.Error)
	}
}

func TestHTTP_Notification(t *testing.T) {
	s := New(imaging.Options{})

	resp := postRPC(t, s, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", resp.StatusCode)
	}
}

func TestHTTP_ToolsAndHealth(t *testing.T) {
	s := New(imaging.Options{})
	app := s.HTTPApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tools", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var tools struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tools); err != nil {
		t.Fatalf("invalid tools body: %v", err)
	}
	if len(tools.Tools) != len(GetToolDefinitions()) {
		t.Errorf("tools: got %d, want %d", len(tools.Tools), len(GetToolDefinitions()))
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status: got %d, want 200", resp.StatusCode)
	}
}
