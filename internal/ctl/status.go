package ctl

import (
	"fmt"
	"strings"
	"time"
)

// StatusResponse mirrors the JSON returned by GET /api/status.
type StatusResponse struct {
	Name          string   `json:"name"`
	UptimeSeconds int64    `json:"uptime_seconds"`
	CachePath     string   `json:"cache_path"`
	Providers     []string `json:"providers"`
	Groups        []string `json:"groups"`
	LastFetch     *struct {
		Provider  string    `json:"provider"`
		Records   int       `json:"records"`
		FetchedAt time.Time `json:"fetched_at"`
	} `json:"last_fetch,omitempty"`
}

// Status fetches the daemon status and prints a formatted summary.
func Status(baseURL string, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var s StatusResponse
	if err := getJSON(baseURL, "/api/status", &s); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(s)
	}

	uptime := formatDuration(time.Duration(s.UptimeSeconds) * time.Second)

	fmt.Println()
	fmt.Println(header("  SATTRACK STATUS"))
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 38)))
	fmt.Printf("  %-12s %s\n", colorize(dim, "Daemon:"), s.Name)
	fmt.Printf("  %-12s %s\n", colorize(dim, "Uptime:"), uptime)
	fmt.Printf("  %-12s %s\n", colorize(dim, "Cache:"), s.CachePath)
	fmt.Printf("  %-12s %s\n", colorize(dim, "Providers:"), strings.Join(s.Providers, " → "))
	fmt.Printf("  %-12s %s\n", colorize(dim, "Groups:"), strings.Join(s.Groups, ", "))
	if s.LastFetch != nil {
		fmt.Printf("  %-12s %d records via %s at %s\n", colorize(dim, "Last fetch:"),
			s.LastFetch.Records, s.LastFetch.Provider,
			s.LastFetch.FetchedAt.Local().Format("15:04:05"))
	}
	fmt.Printf("  %-12s %s\n", colorize(dim, "Host:"), baseURL)
	fmt.Println()

	return nil
}
