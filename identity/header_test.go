package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

func TestHeaderExtractor_Extract(t *testing.T) {
	tests := []struct {
		name        string
		header      http.Header
		wantPresent bool
		wantEmail   string
		wantName    string
	}{
		{
			name: "success-prefix-stripped",
			header: http.Header{
				"X-Goog-Authenticated-User-Email": []string{"accounts.google.com:alice@example.com"},
				"X-Goog-Authenticated-User-Name":  []string{"Alice"},
			},
			wantPresent: true,
			wantEmail:   "alice@example.com",
			wantName:    "Alice",
		},
		{
			name: "success-no-prefix",
			header: http.Header{
				"X-Goog-Authenticated-User-Email": []string{"bob@example.com"},
			},
			wantPresent: true,
			wantEmail:   "bob@example.com",
		},
		{
			name: "success-name-only",
			header: http.Header{
				"X-Goog-Authenticated-User-Name": []string{"Carol"},
			},
			wantPresent: true,
			wantName:    "Carol",
		},
		{
			name: "empty-headers",
			header: http.Header{
				"X-Goog-Authenticated-User-Email": []string{""},
				"X-Goog-Authenticated-User-Name":  []string{""},
			},
		},
		{
			name:   "no-headers",
			header: http.Header{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			h := NewHeaderExtractor(logger)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header = tt.header

			if got := h.Present(req); got != tt.wantPresent {
				t.Errorf("Present() = %v, want %v", got, tt.wantPresent)
			}
			c := h.Extract(req)
			if c.Email != tt.wantEmail {
				t.Errorf("Extract() email = %q, want %q", c.Email, tt.wantEmail)
			}
			if c.Name != tt.wantName {
				t.Errorf("Extract() name = %q, want %q", c.Name, tt.wantName)
			}
			if len(c.Values) != 0 {
				t.Errorf("Extract() values = %v, want none", c.Values)
			}
			if c.Groups == nil || len(c.Groups) != 0 {
				t.Errorf("Extract() groups = %#v, want empty list", c.Groups)
			}
			if c.Authenticated() != (tt.wantEmail != "") {
				t.Errorf("Authenticated() = %v, want %v", c.Authenticated(), tt.wantEmail != "")
			}
		})
	}
}

func TestHeaderExtractor_Mode(t *testing.T) {
	logger, _ := test.NewNullLogger()
	if mode := NewHeaderExtractor(logger).Mode(); mode != "header" {
		t.Errorf("Mode() = %v, want header", mode)
	}
}
