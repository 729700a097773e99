package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// Span attributes must never carry credentials. Keys are matched as
// substrings so variants like http.request.header.authorization are
// caught too.
var redactedKeyFragments = []string{
	"authorization",
	"api_key",
	"bearer",
	"password",
	"secret",
	"token",
}

// ScrubAttributes removes attributes whose keys look credential-bearing.
func ScrubAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, kv := range attrs {
		if redactedKey(string(kv.Key)) {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// ScrubError reduces an error to its dynamic type. Upstream error messages
// may embed customer identifiers, so only the type reaches span events.
func ScrubError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%T", err)
}

func redactedKey(key string) bool {
	key = strings.ToLower(key)
	for _, fragment := range redactedKeyFragments {
		if strings.Contains(key, fragment) {
			return true
		}
	}
	return false
}
