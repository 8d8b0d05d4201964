package ctl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Health checks daemon and component health via the detailed health
// endpoint.
func Health(baseURL string, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	req, err := http.NewRequest(http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var h struct {
		Healthy bool                      `json:"healthy"`
		Checks  map[string]map[string]any `json:"checks"`
	}
	if err := json.Unmarshal(body, &h); err != nil {
		return fmt.Errorf("unexpected health response: %s", strings.TrimSpace(string(body)))
	}

	if jsonOutput {
		return printJSON(h)
	}

	fmt.Println()
	if h.Healthy {
		fmt.Println(header("  HEALTH: ") + colorize(green, "healthy"))
	} else {
		fmt.Println(header("  HEALTH: ") + colorize(red, "degraded"))
	}
	for name, check := range h.Checks {
		ok, _ := check["ok"].(bool)
		mark := colorize(green, "ok")
		if !ok {
			detail, _ := check["error"].(string)
			mark = colorize(red, "fail")
			if detail != "" {
				mark += colorize(dim, " ("+detail+")")
			}
		}
		fmt.Printf("  %-12s %s\n", name+":", mark)
	}
	fmt.Println()
	return nil
}
