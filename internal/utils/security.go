package contextutils

import (
	"sort"
	"strings"
)

// MaskSecret hides a credential for logging, keeping only the first and last
// four characters of values longer than eight.
func MaskSecret(secret string) string {
	if secret == "" {
		return "[EMPTY]"
	}

	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}

	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// MaskHeaders renders exporter headers as sorted "key=masked" pairs. OTLP
// headers usually carry collector API keys.
func MaskHeaders(headers map[string]string) []string {
	out := make([]string, 0, len(headers))
	for k, v := range headers {
		out = append(out, k+"="+MaskSecret(v))
	}
	sort.Strings(out)
	return out
}
