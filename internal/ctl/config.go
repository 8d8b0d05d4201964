package ctl

import (
	"strings"
)

// Config prints the daemon's running configuration as indented JSON.
// Secrets (the Space-Track password) are redacted server-side.
func Config(baseURL string, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var cfg map[string]any
	if err := getJSON(baseURL, "/api/status", &cfg); err != nil {
		return err
	}
	return printJSON(cfg)
}
