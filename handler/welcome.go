package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/m-lab/go/rtx"
	log "github.com/sirupsen/logrus"

	"github.com/m-lab/iap-hello/identity"
	"github.com/m-lab/iap-hello/metrics"
)

// Page is the data rendered by the welcome page template.
type Page struct {
	Title  string
	Claims *identity.Claims
	// ClaimsJSON is the indented JSON of Claims.Values, or empty when the
	// request carried no token claims.
	ClaimsJSON string
}

// NewPage creates the welcome page data for the given claims.
func NewPage(title string, claims *identity.Claims) *Page {
	if claims == nil {
		claims = identity.Empty()
	}
	p := &Page{Title: title, Claims: claims}
	if len(claims.Values) > 0 {
		b, err := json.MarshalIndent(claims.Values, "", "  ")
		// ClaimValue only holds strings.
		rtx.PanicOnError(err, "Failed to format claims")
		p.ClaimsJSON = string(b)
	}
	return p
}

// Welcome implements / requests. It renders the identity forwarded by the
// proxy, without verifying it.
func (c *Client) Welcome(rw http.ResponseWriter, req *http.Request) {
	claims := c.Extract(req)
	page := NewPage(c.title, claims)

	condition := "anonymous"
	if page.Claims.Authenticated() {
		condition = "authenticated"
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		c.log.WithFields(log.Fields{
			"mode":  page.Claims.Mode,
			"error": err.Error(),
		}).Error("failed to render welcome page")
		rw.WriteHeader(http.StatusInternalServerError)
		metrics.RequestsTotal.WithLabelValues("welcome", "render",
			http.StatusText(http.StatusInternalServerError)).Inc()
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	rw.Write(buf.Bytes())
	metrics.RequestsTotal.WithLabelValues("welcome", condition, http.StatusText(http.StatusOK)).Inc()
}
