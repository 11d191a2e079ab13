// Package handler provides a client and handlers for responding to welcome
// page and status requests.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/m-lab/go/rtx"
	log "github.com/sirupsen/logrus"

	v1 "github.com/m-lab/iap-hello/api/v1"
	"github.com/m-lab/iap-hello/identity"
	"github.com/m-lab/iap-hello/metrics"
	"github.com/m-lab/iap-hello/static"
)

// Client contains state needed to serve the welcome service.
type Client struct {
	identity.Extractor
	title string
	log   log.FieldLogger
}

// NewClient creates a new client. The extractor decides which identity, if
// any, is shown on the welcome page.
func NewClient(title string, extractor identity.Extractor, logger log.FieldLogger) *Client {
	return &Client{
		Extractor: extractor,
		title:     title,
		log:       logger,
	}
}

// Health implements /health requests.
func (c *Client) Health(rw http.ResponseWriter, req *http.Request) {
	setHeaders(rw)
	result := v1.HealthResult{
		Status:  static.HealthStatus,
		Message: static.HealthMessage,
	}
	writeResult(rw, http.StatusOK, &result)
	metrics.RequestsTotal.WithLabelValues("health", "success", http.StatusText(http.StatusOK)).Inc()
}

// Info implements /info requests.
func (c *Client) Info(rw http.ResponseWriter, req *http.Request) {
	setHeaders(rw)
	result := v1.InfoResult{
		Service:            static.ServiceName,
		Version:            static.ServiceVersion,
		IAPReady:           true,
		AzureADIntegration: static.AzureADIntegration,
	}
	writeResult(rw, http.StatusOK, &result)
	metrics.RequestsTotal.WithLabelValues("info", "success", http.StatusText(http.StatusOK)).Inc()
}

// setHeaders sets the response headers for JSON requests.
func setHeaders(rw http.ResponseWriter) {
	rw.Header().Set("Content-Type", "application/json")
	// Prevent caching of result.
	rw.Header().Set("Cache-Control", "no-store")
}

// writeResult marshals the result and writes the result to the response writer.
func writeResult(rw http.ResponseWriter, status int, result interface{}) {
	b, err := json.Marshal(result)
	// Errors are only possible when marshalling incompatible types, like functions.
	rtx.PanicOnError(err, "Failed to format result")
	rw.WriteHeader(status)
	rw.Write(b)
}
