// Package v1 defines the JSON responses of the welcome service status
// endpoints.
package v1

// HealthResult is returned by /health. The service has no dependencies, so
// it is healthy whenever it can answer.
type HealthResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// InfoResult is returned by /info and describes the deployed service.
type InfoResult struct {
	// Service is the human readable service name.
	Service string `json:"service"`

	// Version is the release of the service.
	Version string `json:"version"`

	// IAPReady is true when the service understands the identity headers
	// forwarded by the Identity-Aware Proxy.
	IAPReady bool `json:"iap_ready"`

	// AzureADIntegration describes the state of the Azure AD federation.
	AzureADIntegration string `json:"azure_ad_integration"`
}
