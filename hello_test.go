package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/m-lab/iap-hello/handler"
	"github.com/m-lab/iap-hello/identity"
)

func Test_newMux(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "welcome", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "info", method: http.MethodGet, path: "/info", wantStatus: http.StatusOK},
		{name: "unknown-path", method: http.MethodGet, path: "/missing", wantStatus: http.StatusNotFound},
		{name: "health-subpath", method: http.MethodGet, path: "/health/x", wantStatus: http.StatusNotFound},
		{name: "post-health", method: http.MethodPost, path: "/health", wantStatus: http.StatusMethodNotAllowed},
	}
	logger, _ := test.NewNullLogger()
	extractor := identity.NewChain(identity.NewTokenExtractor(logger), identity.NewHeaderExtractor(logger))
	srv := httptest.NewServer(newMux(handler.NewClient("Hello World App", extractor, logger)))
	defer srv.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("failed to issue request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("%s %s wrong status; got %d, want %d", tt.method, tt.path, resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && resp.Header.Get(handler.RequestIDHeader) == "" {
				t.Errorf("%s %s missing %s", tt.method, tt.path, handler.RequestIDHeader)
			}
		})
	}
}

func Test_newLogger(t *testing.T) {
	logger, err := newLogger("debug")
	if err != nil {
		t.Fatalf("newLogger() unexpected error: %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("newLogger() level = %v, want debug", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*log.JSONFormatter); !ok {
		t.Errorf("newLogger() formatter = %T, want JSON", logger.Formatter)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("newLogger() expected error for unknown level")
	}
}
