package server

import (
	"strings"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
)

// normalizeProviderName lower-cases the configured kind, falling back to the provider's own name.
func normalizeProviderName(raw string, provider providers.RawTableProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	return strings.ToLower(providers.NameOf(provider, "provider"))
}
