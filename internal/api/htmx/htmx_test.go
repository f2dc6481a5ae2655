package htmx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if IsRequest(r) {
		t.Fatalf("plain request detected as htmx")
	}
	r.Header.Set("HX-Request", "TRUE")
	if !IsRequest(r) {
		t.Fatalf("expected htmx request")
	}
}

func TestTrigger(t *testing.T) {
	recorder := httptest.NewRecorder()
	if err := Trigger(recorder, "openLink", map[string]string{"url": "https://wa.me/1?text=a%20b"}); err != nil {
		t.Fatalf("trigger: %v", err)
	}

	var payload map[string]map[string]string
	if err := json.Unmarshal([]byte(recorder.Header().Get("HX-Trigger")), &payload); err != nil {
		t.Fatalf("decode trigger: %v", err)
	}
	if payload["openLink"]["url"] != "https://wa.me/1?text=a%20b" {
		t.Fatalf("unexpected trigger payload: %v", payload)
	}
}
