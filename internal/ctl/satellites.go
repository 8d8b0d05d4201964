package ctl

import (
	"fmt"
	"net/url"
	"strings"
)

// satelliteJSON mirrors the record shape served by the daemon. Only the
// fields the terminal renders are declared.
type satelliteJSON struct {
	CatalogID   string `json:"catalog_id"`
	Name        string `json:"name"`
	MissionType string `json:"mission_type"`
	OrbitRegime string `json:"orbit_regime"`
	Elements    struct {
		InclinationDeg float64 `json:"inclination_deg"`
		PeriodMinutes  float64 `json:"period_minutes"`
	} `json:"elements"`
	Metadata struct {
		IntlDesignator string `json:"intl_designator"`
		Country        string `json:"country"`
	} `json:"metadata"`
	AltitudeKm float64 `json:"altitude_km"`
	Active     bool    `json:"active"`
	Origin     string  `json:"origin"`
}

// FilterOptions carries the satellite filter flags shared by the
// satellites and stats commands.
type FilterOptions struct {
	Mission        string
	Regime         string
	Country        string
	Active         string // "", "true", or "false"
	MinAltitudeKm  float64
	MaxAltitudeKm  float64
	MinInclination float64
	MaxInclination float64
}

// query renders the options as a URL query string ("" when unset).
func (o FilterOptions) query() string {
	q := url.Values{}
	if o.Mission != "" {
		q.Set("mission", o.Mission)
	}
	if o.Regime != "" {
		q.Set("regime", o.Regime)
	}
	if o.Country != "" {
		q.Set("country", o.Country)
	}
	if o.Active != "" {
		q.Set("active", o.Active)
	}
	if o.MinAltitudeKm != 0 {
		q.Set("min_altitude_km", fmt.Sprintf("%g", o.MinAltitudeKm))
	}
	if o.MaxAltitudeKm != 0 {
		q.Set("max_altitude_km", fmt.Sprintf("%g", o.MaxAltitudeKm))
	}
	if o.MinInclination != 0 {
		q.Set("min_inclination_deg", fmt.Sprintf("%g", o.MinInclination))
	}
	if o.MaxInclination != 0 {
		q.Set("max_inclination_deg", fmt.Sprintf("%g", o.MaxInclination))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Satellites lists the active satellite collection, optionally filtered.
func Satellites(baseURL string, opts FilterOptions, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var resp struct {
		Count      int             `json:"count"`
		Satellites []satelliteJSON `json:"satellites"`
	}
	if err := getJSON(baseURL, "/api/satellites"+opts.query(), &resp); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Println()
	fmt.Println(header(fmt.Sprintf("  SATELLITES (%d)", resp.Count)))

	t := newTable("  ", "ID", "Name", "Mission", "Regime", "Alt km", "Period min", "Active")
	t.alignRight(4)
	t.alignRight(5)
	for _, s := range resp.Satellites {
		active := "no"
		if s.Active {
			active = "yes"
		}
		t.row(
			s.CatalogID,
			s.Name,
			s.MissionType,
			s.OrbitRegime,
			fmt.Sprintf("%.0f", s.AltitudeKm),
			fmt.Sprintf("%.1f", s.Elements.PeriodMinutes),
			colorize(activeColor(s.Active), active),
		)
	}
	t.flush()
	fmt.Println()

	return nil
}

// Satellite shows a single satellite by NORAD catalog ID.
func Satellite(baseURL, id string, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var s satelliteJSON
	if err := getJSON(baseURL, "/api/satellites/"+url.PathEscape(id), &s); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(s)
	}

	active := "no"
	if s.Active {
		active = "yes"
	}

	fmt.Println()
	fmt.Println(header("  " + s.Name))
	fmt.Println(colorize(dim, "  "+strings.Repeat("─", 38)))
	fmt.Printf("  %-16s %s\n", colorize(dim, "Catalog ID:"), s.CatalogID)
	fmt.Printf("  %-16s %s\n", colorize(dim, "Designator:"), s.Metadata.IntlDesignator)
	fmt.Printf("  %-16s %s\n", colorize(dim, "Country:"), s.Metadata.Country)
	fmt.Printf("  %-16s %s\n", colorize(dim, "Mission:"), s.MissionType)
	fmt.Printf("  %-16s %s\n", colorize(dim, "Regime:"), s.OrbitRegime)
	fmt.Printf("  %-16s %.1f km\n", colorize(dim, "Altitude:"), s.AltitudeKm)
	fmt.Printf("  %-16s %.2f min\n", colorize(dim, "Period:"), s.Elements.PeriodMinutes)
	fmt.Printf("  %-16s %.2f°\n", colorize(dim, "Inclination:"), s.Elements.InclinationDeg)
	fmt.Printf("  %-16s %s\n", colorize(dim, "Active:"), colorize(activeColor(s.Active), active))
	fmt.Printf("  %-16s %s\n", colorize(dim, "Source:"), s.Origin)
	fmt.Println()

	return nil
}
