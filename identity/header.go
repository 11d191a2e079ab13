package identity

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/m-lab/iap-hello/metrics"
	"github.com/m-lab/iap-hello/static"
)

// HeaderExtractor reads the authenticated user from the plain
// X-Goog-Authenticated-User-Email and X-Goog-Authenticated-User-Name headers.
type HeaderExtractor struct {
	log log.FieldLogger
}

// NewHeaderExtractor creates a new header-pair extractor.
func NewHeaderExtractor(logger log.FieldLogger) *HeaderExtractor {
	return &HeaderExtractor{log: logger}
}

// Present reports whether either user header is set.
func (h *HeaderExtractor) Present(req *http.Request) bool {
	return req.Header.Get(static.HeaderUserEmail) != "" ||
		req.Header.Get(static.HeaderUserName) != ""
}

// Extract returns the email and name found in the header pair. The
// "accounts.google.com:" prefix added by IAP is removed from the email.
func (h *HeaderExtractor) Extract(req *http.Request) *Claims {
	c := Empty()
	c.Mode = h.Mode()
	c.Email = strings.TrimPrefix(req.Header.Get(static.HeaderUserEmail), static.AccountsPrefix)
	c.Name = req.Header.Get(static.HeaderUserName)

	h.log.WithFields(log.Fields{
		"mode":  h.Mode(),
		"email": c.Email,
	}).Debug("identity headers extracted (UNVERIFIED)")
	metrics.ClaimExtractionsTotal.WithLabelValues(h.Mode(), "ok").Inc()
	return c
}

// Mode returns the extraction mode name.
func (h *HeaderExtractor) Mode() string {
	return "header"
}
