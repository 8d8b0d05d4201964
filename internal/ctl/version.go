package ctl

import (
	"fmt"
	"strings"
)

// CLIVersion is stamped at build time via -ldflags.
var CLIVersion = "dev"

// VersionInfo prints the CLI version and the daemon's version information.
func VersionInfo(baseURL string, jsonOutput bool) error {
	baseURL = strings.TrimRight(baseURL, "/")

	var resp struct {
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
		BuiltAt   string `json:"built_at"`
	}
	err := getJSON(baseURL, "/api/version", &resp)

	if jsonOutput {
		out := map[string]any{"cli_version": CLIVersion}
		if err == nil {
			out["daemon"] = resp
		}
		return printJSON(out)
	}

	fmt.Println()
	fmt.Printf("  %-14s %s\n", colorize(dim, "satctl:"), CLIVersion)
	if err != nil {
		fmt.Printf("  %-14s %s\n", colorize(dim, "daemon:"), colorize(red, "unreachable: "+err.Error()))
	} else {
		fmt.Printf("  %-14s %s (%s, built %s)\n",
			colorize(dim, "daemon:"), resp.Version, resp.GoVersion, resp.BuiltAt)
	}
	fmt.Println()
	return nil
}
