package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func remoteAddrHandler(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = r.RemoteAddr
	})
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{
			name:       "trusted proxy with X-Real-IP",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:5555",
			realIP:     "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "trusted proxy with X-Forwarded-For chain",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:5555",
			forwarded:  "203.0.113.7, 10.1.2.3",
			want:       "203.0.113.7",
		},
		{
			name:       "untrusted client headers ignored",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "198.51.100.9:1234",
			realIP:     "1.2.3.4",
			want:       "198.51.100.9:1234",
		},
		{
			name:       "no trusted proxies configured",
			trusted:    nil,
			remoteAddr: "10.1.2.3:5555",
			realIP:     "1.2.3.4",
			want:       "10.1.2.3:5555",
		},
		{
			name:       "single IP trusted entry",
			trusted:    []string{"127.0.0.1"},
			remoteAddr: "127.0.0.1:9000",
			realIP:     "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "invalid header value kept out",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:5555",
			realIP:     "not-an-ip",
			want:       "10.1.2.3:5555",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := TrustedRealIP(tt.trusted)(remoteAddrHandler(&got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}
