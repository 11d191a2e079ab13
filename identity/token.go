package identity

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-jose/go-jose/v4"
	log "github.com/sirupsen/logrus"

	"github.com/m-lab/iap-hello/metrics"
	"github.com/m-lab/iap-hello/static"
)

var (
	errNotObject   = errors.New("token payload is not a JSON object")
	errInvalidUTF8 = errors.New("token payload is not valid UTF-8")
	errTrailing    = errors.New("token payload has data after the JSON object")
	errNoSignature = errors.New("token has no signature")

	// headerAlgorithms lists the algorithms accepted when reading the
	// assertion header. IAP signs with ES256.
	headerAlgorithms = []jose.SignatureAlgorithm{
		jose.ES256, jose.ES384, jose.ES512,
		jose.RS256, jose.RS384, jose.RS512,
		jose.PS256, jose.PS384, jose.PS512,
		jose.EdDSA, jose.HS256, jose.HS384, jose.HS512,
	}
)

// TokenExtractor decodes the claims of the x-goog-iap-jwt-assertion token
// WITHOUT signature verification.
//
// WARNING: the decoded claims are attacker controlled unless the request
// came through IAP. Never use them for access decisions.
type TokenExtractor struct {
	log log.FieldLogger
}

// NewTokenExtractor creates a new token extractor.
func NewTokenExtractor(logger log.FieldLogger) *TokenExtractor {
	return &TokenExtractor{log: logger}
}

// Present reports whether the assertion header is set.
func (t *TokenExtractor) Present(req *http.Request) bool {
	return req.Header.Get(static.HeaderIAPAssertion) != ""
}

// Extract decodes the assertion header into claims.
func (t *TokenExtractor) Extract(req *http.Request) *Claims {
	token := req.Header.Get(static.HeaderIAPAssertion)
	c := newClaims(t.Mode(), t.Decode(token))
	c.Header = t.header(token)
	return c
}

// Decode returns the claims in the token payload. A token without exactly
// three segments yields an empty map. Any other decoding failure is logged
// and reported as a single "error" claim.
func (t *TokenExtractor) Decode(token string) map[string]interface{} {
	payload, err := DecodePayload(token)
	if err != nil {
		t.log.WithFields(log.Fields{
			"mode":  t.Mode(),
			"error": err.Error(),
		}).Error("Failed to decode IAP JWT")
		metrics.ClaimExtractionsTotal.WithLabelValues(t.Mode(), "error").Inc()
		return map[string]interface{}{"error": err.Error()}
	}
	if len(payload) == 0 {
		metrics.ClaimExtractionsTotal.WithLabelValues(t.Mode(), "empty").Inc()
		return payload
	}
	t.log.WithFields(log.Fields{
		"mode":   t.Mode(),
		"claims": len(payload),
	}).Debug("JWT claims extracted (UNVERIFIED)")
	metrics.ClaimExtractionsTotal.WithLabelValues(t.Mode(), "ok").Inc()
	return payload
}

// Mode returns the extraction mode name.
func (t *TokenExtractor) Mode() string {
	return "token"
}

// header reads the unverified JOSE header for display. Failures are not
// reported to the caller.
func (t *TokenExtractor) header(token string) *TokenHeader {
	if strings.Count(token, ".") != 2 {
		return nil
	}
	h, err := ParseHeader(token)
	if err != nil {
		t.log.WithFields(log.Fields{
			"mode":  t.Mode(),
			"error": err.Error(),
		}).Debug("could not parse IAP JWT header")
		return nil
	}
	return h
}

// DecodePayload base64url decodes and parses the middle segment of a compact
// JWT. The returned map is empty, and the error nil, when the token does not
// have exactly three segments.
func DecodePayload(token string) (map[string]interface{}, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return map[string]interface{}{}, nil
	}

	segment := parts[1]
	if n := len(segment) % 4; n != 0 {
		segment += strings.Repeat("=", 4-n)
	}
	decoded, err := base64.URLEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("failed to decode token payload: %w", errInvalidUTF8)
	}

	// Numbers are kept as json.Number so large integers survive exactly.
	dec := json.NewDecoder(bytes.NewReader(decoded))
	dec.UseNumber()
	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse token payload: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to parse token payload: %w", errTrailing)
	}
	// A literal "null" unmarshals into a nil map without error.
	if payload == nil {
		return nil, errNotObject
	}
	return payload, nil
}

// ParseHeader parses token as a compact JWS and returns the algorithm and key
// id of its first signature. The signature itself is not checked.
func ParseHeader(token string) (*TokenHeader, error) {
	jws, err := jose.ParseSigned(token, headerAlgorithms)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWS: %w", err)
	}
	if len(jws.Signatures) == 0 {
		return nil, errNoSignature
	}
	h := jws.Signatures[0].Header
	return &TokenHeader{
		Algorithm: h.Algorithm,
		KeyID:     h.KeyID,
	}, nil
}
