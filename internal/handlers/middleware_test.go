package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pumpjack_simulator/internal/service"

	"github.com/gin-gonic/gin"
)

// newMiddlewareOnlyRouter wires the middleware in front of a handler that
// echoes the operator id it sees.
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, nil)
	r.GET("/secure", h.operatorIdMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"operatorId": operatorID(c)})
	})
	return r
}

func TestOperatorIDMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		parseErr error
		wantCode int
		wantErr  string
		wantID   int
	}{
		{"missing header", "", nil, http.StatusUnauthorized, "missing Authorization header", 0},
		{"basic scheme", "Basic dTpw", nil, http.StatusUnauthorized, "invalid Authorization header format", 0},
		{"bearer without token", "Bearer", nil, http.StatusUnauthorized, "invalid Authorization header format", 0},
		{"rejected token", "Bearer expired", service.ErrInvalidToken, http.StatusUnauthorized, errTokenRejected, 0},
		{"valid token", "Bearer good-token", nil, http.StatusOK, "", 123},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseID: 123, parseErr: tc.parseErr}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			var out struct {
				Error      string `json:"error"`
				OperatorID int    `json:"operatorId"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Error != tc.wantErr || out.OperatorID != tc.wantID {
				t.Fatalf("got %+v, want error=%q id=%d", out, tc.wantErr, tc.wantID)
			}
			if tc.wantCode == http.StatusOK && auth.lastParseToken != "good-token" {
				t.Fatalf("ParseToken got %q", auth.lastParseToken)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"", "", errMissingAuthHeader},
		{"Bearer abc", "abc", nil},
		{"Bearer   abc  ", "abc", nil},
		{"bearer abc", "", errBadAuthHeader},
		{"Bearer ", "", errBadAuthHeader},
		{"Basic dTpw", "", errBadAuthHeader},
	}
	for _, tc := range cases {
		got, err := bearerToken(tc.header)
		if !errors.Is(err, tc.wantErr) || got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, %v; want %q, %v", tc.header, got, err, tc.want, tc.wantErr)
		}
	}
}
