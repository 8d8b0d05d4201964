package ctl

import (
	"fmt"
	"strings"
)

// Stats shows aggregate satellite statistics from the daemon.
func Stats(baseURL string, opts FilterOptions, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var resp struct {
		Total         int            `json:"total"`
		Active        int            `json:"active"`
		Inactive      int            `json:"inactive"`
		ByMissionType map[string]int `json:"by_mission_type"`
		ByOrbitRegime map[string]int `json:"by_orbit_regime"`
		ByCountry     map[string]int `json:"by_country"`
		AverageAlt    float64        `json:"average_altitude_km"`
		AltitudeRange struct {
			MinKm float64 `json:"min_km"`
			MaxKm float64 `json:"max_km"`
		} `json:"altitude_range"`
	}
	if err := getJSON(baseURL, "/api/stats"+opts.query(), &resp); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Println()
	fmt.Println(header("  SATELLITE STATISTICS"))
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 42)))
	fmt.Printf("  Total:            %d\n", resp.Total)
	fmt.Printf("  Active:           %s\n", colorize(green, fmt.Sprintf("%d", resp.Active)))
	fmt.Printf("  Inactive:         %s\n", colorize(red, fmt.Sprintf("%d", resp.Inactive)))
	fmt.Printf("  Avg altitude:     %.1f km\n", resp.AverageAlt)
	fmt.Printf("  Altitude range:   %.1f – %.1f km\n", resp.AltitudeRange.MinKm, resp.AltitudeRange.MaxKm)

	if len(resp.ByMissionType) > 0 {
		fmt.Println()
		fmt.Println(header("  BY MISSION"))
		t := newTable("  ", "Mission", "Count")
		t.alignRight(1)
		for mission, count := range resp.ByMissionType {
			t.row(mission, fmt.Sprintf("%d", count))
		}
		t.flush()
	}

	if len(resp.ByOrbitRegime) > 0 {
		fmt.Println()
		fmt.Println(header("  BY REGIME"))
		t := newTable("  ", "Regime", "Count")
		t.alignRight(1)
		for regime, count := range resp.ByOrbitRegime {
			t.row(regime, fmt.Sprintf("%d", count))
		}
		t.flush()
	}

	if len(resp.ByCountry) > 0 {
		fmt.Println()
		fmt.Println(header("  BY COUNTRY"))
		t := newTable("  ", "Country", "Count")
		t.alignRight(1)
		for country, count := range resp.ByCountry {
			t.row(country, fmt.Sprintf("%d", count))
		}
		t.flush()
	}

	fmt.Println()
	return nil
}
