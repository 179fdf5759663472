package ratelimit

import (
	"strings"
)

// MatchEndpoint finds the configuration for a request path and method, or nil.
// Exact paths win over prefix entries, which end in "/" (e.g. "/jobs/" matches "/jobs/{hash}/matches").
// GET /health is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
