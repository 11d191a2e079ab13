// Package identity extracts the identity that the Identity-Aware Proxy
// forwards with each request.
//
// Two strategies are supported:
//   - Header: read the X-Goog-Authenticated-User-* header pair
//   - Token: decode the payload of the x-goog-iap-jwt-assertion token
//
// Neither strategy verifies anything. The signature, expiry, issuer and
// audience of the token are never checked, so callers must treat the
// resulting Claims as display data only.
package identity

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/m-lab/iap-hello/static"
)

// Extractor defines the interface for extracting identity claims from HTTP
// requests. Extract never fails and never returns nil.
type Extractor interface {
	// Extract returns the unverified claims carried by the request.
	Extract(req *http.Request) *Claims

	// Mode returns the name of the extraction mode (for logging/debugging).
	Mode() string
}

// Strategy is an Extractor that can tell whether its input is present on a
// request.
type Strategy interface {
	Extractor
	Present(req *http.Request) bool
}

// ClaimValue is the display record of a single claim.
type ClaimValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// TokenHeader holds the unverified JOSE header fields of an assertion.
type TokenHeader struct {
	Algorithm string
	KeyID     string
}

// Claims is the request-scoped, unverified identity of the caller.
type Claims struct {
	// Mode names the strategy that produced the claims, or is empty when
	// the request carried no identity headers.
	Mode   string
	Email  string
	Name   string
	Groups []string
	// Values holds one display record per claim in the decoded token.
	Values map[string]ClaimValue
	// Header is set when the assertion parsed as a compact JWS.
	Header *TokenHeader
}

// Empty returns a claim set with no identity.
func Empty() *Claims {
	return &Claims{
		Groups: []string{},
		Values: map[string]ClaimValue{},
	}
}

// Authenticated reports whether the claims carry an email address. It says
// nothing about whether that address was verified.
func (c *Claims) Authenticated() bool {
	return c != nil && c.Email != ""
}

// newClaims builds the claim set from a decoded token payload.
func newClaims(mode string, payload map[string]interface{}) *Claims {
	c := Empty()
	c.Mode = mode
	for k, v := range payload {
		c.Values[k] = NewClaimValue(v)
	}
	c.Email, _ = payload["email"].(string)
	c.Name, _ = payload["name"].(string)
	if c.Name == "" {
		c.Name, _ = payload["given_name"].(string)
	}
	c.Groups = groups(payload["groups"])
	return c
}

// groups accepts a list of group names or a single name. Non-string list
// elements are skipped.
func groups(v interface{}) []string {
	result := []string{}
	switch g := v.(type) {
	case string:
		if g != "" {
			result = append(result, g)
		}
	case []interface{}:
		for _, e := range g {
			if s, ok := e.(string); ok {
				result = append(result, s)
			}
		}
	}
	return result
}

// NewClaimValue creates the display record for a decoded JSON value. Type is
// the JSON type name and Value is the string itself for strings, or the
// compact JSON encoding otherwise.
func NewClaimValue(v interface{}) ClaimValue {
	return ClaimValue{
		Type:  typeName(v),
		Value: truncate(displayString(v), static.MaxClaimValueLength),
	}
}

// typeName names the JSON type of a decoded value: string, number, boolean,
// array, object or null.
func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func displayString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// truncate limits s to n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
