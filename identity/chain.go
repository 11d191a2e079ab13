package identity

import (
	"net/http"

	"github.com/m-lab/iap-hello/metrics"
)

// Chain selects the first strategy whose input is present on the request.
type Chain struct {
	strategies []Strategy
}

// NewChain creates a Chain trying each strategy in order.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Extract returns the claims of the first present strategy, or empty claims
// when the request carries no identity.
func (c *Chain) Extract(req *http.Request) *Claims {
	for _, s := range c.strategies {
		if s.Present(req) {
			return s.Extract(req)
		}
	}
	metrics.ClaimExtractionsTotal.WithLabelValues("none", "empty").Inc()
	return Empty()
}

// Mode returns the extraction mode name.
func (c *Chain) Mode() string {
	return "chain"
}
