package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/m-lab/iap-hello/metrics"
)

func TestChain_Extract(t *testing.T) {
	payload := map[string]interface{}{"email": "token@example.com", "name": "Token User"}

	tests := []struct {
		name      string
		header    http.Header
		wantMode  string
		wantEmail string
	}{
		{
			name: "token-preferred",
			header: http.Header{
				"X-Goog-Iap-Jwt-Assertion":        []string{"h." + encodeSegment(t, payload) + ".s"},
				"X-Goog-Authenticated-User-Email": []string{"accounts.google.com:header@example.com"},
			},
			wantMode:  "token",
			wantEmail: "token@example.com",
		},
		{
			name: "header-pair",
			header: http.Header{
				"X-Goog-Authenticated-User-Email": []string{"accounts.google.com:header@example.com"},
			},
			wantMode:  "header",
			wantEmail: "header@example.com",
		},
		{
			name:   "no-identity",
			header: http.Header{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			c := NewChain(NewTokenExtractor(logger), NewHeaderExtractor(logger))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header = tt.header

			got := c.Extract(req)
			if got == nil {
				t.Fatal("Extract() returned nil claims")
			}
			if got.Mode != tt.wantMode {
				t.Errorf("Extract() mode = %q, want %q", got.Mode, tt.wantMode)
			}
			if got.Email != tt.wantEmail {
				t.Errorf("Extract() email = %q, want %q", got.Email, tt.wantEmail)
			}
		})
	}
}

func TestChain_ExtractCountsEmpty(t *testing.T) {
	before := testutil.ToFloat64(metrics.ClaimExtractionsTotal.WithLabelValues("none", "empty"))
	NewChain().Extract(httptest.NewRequest(http.MethodGet, "/", nil))
	after := testutil.ToFloat64(metrics.ClaimExtractionsTotal.WithLabelValues("none", "empty"))
	if after-before != 1 {
		t.Errorf("ClaimExtractionsTotal{none,empty} increased by %v, want 1", after-before)
	}
}

func TestChain_Mode(t *testing.T) {
	if mode := NewChain().Mode(); mode != "chain" {
		t.Errorf("Mode() = %v, want chain", mode)
	}
}
