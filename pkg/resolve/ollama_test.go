package resolve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSanitizeBaseURL(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		" http://localhost:11434 ":  "http://localhost:11434",
		"http://localhost:11434/":   "http://localhost:11434",
		"http://ollama.local:80///": "http://ollama.local:80",
	}
	for raw, want := range cases {
		if got := sanitizeBaseURL(raw); got != want {
			t.Fatalf("sanitizeBaseURL(%q)=%q want %q", raw, got, want)
		}
	}
}

func TestClientProbeAndComplete(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			var req generateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			gotPrompt = req.Prompt
			if req.Stream {
				t.Errorf("streaming must be disabled")
			}
			json.NewEncoder(w).Encode(generateResponse{Response: `{"device_type":"server"}`})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tinyllama", 0.2, 5*time.Second)
	if !c.Available() {
		t.Fatalf("probe failed against live server")
	}
	text, err := c.Complete(context.Background(), Request{
		RowID: "1",
		Context: RequestContext{RowID: "1", RawOwner: "Jane"},
		Constraints: Constraints{
			Temperature:        "<=0.2",
			AllowedDeviceTypes: []string{"server", "switch"},
			Output:             "json_object_only",
			NoHallucination:    true,
		},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != `{"device_type":"server"}` {
		t.Fatalf("Complete=%q", text)
	}
	for _, fragment := range []string{"STRICT_JSON_OBJECT_ONLY", "reasoning_short", `"raw_owner":"Jane"`} {
		if !strings.Contains(gotPrompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, gotPrompt)
		}
	}
}

func TestClientUnavailableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, "tinyllama", 0.2, time.Second)
	if c.Available() {
		t.Fatalf("probe succeeded against closed server")
	}
}

func TestClientCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "tinyllama", 0.2, time.Second)
	if _, err := c.Complete(context.Background(), Request{RowID: "1"}); err == nil {
		t.Fatalf("want error on 500 response")
	}
}

func TestClientTemperatureCeiling(t *testing.T) {
	c := NewClient("", "tinyllama", 0.9, time.Second)
	if c.temperature > 0.2 {
		t.Fatalf("temperature %v exceeds ceiling", c.temperature)
	}
}
