// Package static contains static information for the welcome service.
package static

// Headers set by the Identity-Aware Proxy in front of App Engine. None of
// these are verified by this service.
const (
	HeaderIAPAssertion = "X-Goog-Iap-Jwt-Assertion"
	HeaderUserEmail    = "X-Goog-Authenticated-User-Email"
	HeaderUserName     = "X-Goog-Authenticated-User-Name"

	// AccountsPrefix is prepended by IAP to the authenticated user headers.
	AccountsPrefix = "accounts.google.com:"
)

// Constants describing the service and its pages.
const (
	DefaultTitle       = "Hello World App"
	ServiceName        = "App Engine Hello World"
	ServiceVersion     = "1.0.2"
	AzureADIntegration = "Pending Configuration"
	HealthStatus       = "healthy"
	HealthMessage      = "App Engine service is running"

	// MaxClaimValueLength is the number of characters of a claim value
	// shown in the claims panel.
	MaxClaimValueLength = 200
)
