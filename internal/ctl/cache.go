package ctl

import (
	"fmt"
	"strings"
)

// CacheClear asks the daemon to drop every cached satellite entry.
func CacheClear(baseURL string, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var resp struct {
		OK             bool `json:"ok"`
		EntriesRemoved int  `json:"entries_removed"`
	}
	if err := postJSON(baseURL, "/api/cache/clear", &resp); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Printf("\n  %s removed %d cache entries\n\n",
		colorize(green, "ok:"), resp.EntriesRemoved)
	return nil
}
