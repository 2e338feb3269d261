package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		preflight  bool
		wantOrigin string
		wantStatus int
	}{
		{name: "listed origin", allowed: []string{"https://app.example/"}, origin: "https://app.example", wantOrigin: "https://app.example", wantStatus: http.StatusTeapot},
		{name: "unlisted origin", allowed: []string{"https://app.example"}, origin: "https://evil.example", wantStatus: http.StatusTeapot},
		{name: "wildcard", allowed: []string{"*"}, origin: "https://any.example", wantOrigin: "https://any.example", wantStatus: http.StatusTeapot},
		{name: "preflight", allowed: []string{"*"}, origin: "https://any.example", preflight: true, wantOrigin: "https://any.example", wantStatus: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/v1/styles", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed)(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "abc-123" || rr.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("echoed id = %q / %q", seen, rr.Header().Get(RequestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "bad id with spaces")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen == "" || seen == "bad id with spaces" || len(seen) != 36 {
		t.Fatalf("minted id = %q", seen)
	}
}
