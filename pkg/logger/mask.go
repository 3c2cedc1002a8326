package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// MaskToken returns a short stable fingerprint of an API token so log lines
// can be correlated without exposing the secret.
func MaskToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	sum := sha256.Sum256([]byte(token))
	return "token#" + hex.EncodeToString(sum[:])[:8]
}

// MaskAPIEndpoint keeps scheme and host of an endpoint and hides the path
func MaskAPIEndpoint(apiURL string) string {
	if apiURL == "" {
		return ""
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Host == "" {
		sum := sha256.Sum256([]byte(apiURL))
		return "endpoint#" + hex.EncodeToString(sum[:])[:8]
	}
	if parsed.Path == "" || parsed.Path == "/" {
		return parsed.Scheme + "://" + parsed.Host
	}
	return parsed.Scheme + "://" + parsed.Host + "/***"
}
