package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "pumpjack_simulator/docs"
	"pumpjack_simulator/internal/service"
)

func TestSwaggerDocServed(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("doc.json status=%d", w.Code)
	}
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not valid JSON: %v", err)
	}
	for _, p := range []string{"/api/v1/pump/targets", "/api/v1/pump/state", "/api/v1/logs"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("doc.json missing path %s", p)
		}
	}
}
