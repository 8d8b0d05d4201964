// Satctl is the command-line client for a running sattrackd instance. It
// connects over HTTP and WebSocket to query the satellite catalog and
// stream live events from the daemon.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/orbview/sattrack/internal/ctl"
)

func main() {
	var (
		host    = pflag.StringP("host", "H", "http://127.0.0.1:8080", "Sattrack daemon URL (e.g. http://192.168.8.1:8080)")
		jsonOut = pflag.Bool("json", false, "Output raw JSON instead of formatted text")
		filter  = pflag.StringSlice("filter", nil, "Event types to show in watch (e.g. --filter fetch_completed,log)")
	)

	// Stop parsing global flags at the first non-flag argument (the command
	// name), so subcommand-specific flags like --mission are not rejected.
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if pflag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cmd := pflag.Arg(0)
	subArgs := pflag.Args()[1:]

	var err error
	switch cmd {
	// ── Query commands ────────────────────────────────────────────
	case "status":
		err = ctl.Status(*host, *jsonOut)

	case "health":
		err = ctl.Health(*host, *jsonOut)

	case "version":
		err = ctl.VersionInfo(*host, *jsonOut)

	case "config":
		err = ctl.Config(*host, *jsonOut)

	case "satellites":
		opts, sub := filterFlags("satellites", subArgs)
		if sub.NArg() > 0 {
			err = ctl.Satellite(*host, sub.Arg(0), *jsonOut)
		} else {
			err = ctl.Satellites(*host, opts, *jsonOut)
		}

	case "stats":
		opts, _ := filterFlags("stats", subArgs)
		err = ctl.Stats(*host, opts, *jsonOut)

	// ── Control commands ──────────────────────────────────────────
	case "cache-clear":
		err = ctl.CacheClear(*host, *jsonOut)

	// ── Live streaming ────────────────────────────────────────────
	case "watch":
		err = ctl.Watch(*host, ctl.WatchOptions{
			Filter: *filter,
			JSON:   *jsonOut,
		})

	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// filterFlags parses the shared satellite filter flags for a subcommand and
// returns the parsed flag set so positional arguments remain accessible.
func filterFlags(name string, args []string) (ctl.FilterOptions, *pflag.FlagSet) {
	var opts ctl.FilterOptions
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVar(&opts.Mission, "mission", "", "Filter by mission type (comma-separated)")
	fs.StringVar(&opts.Regime, "regime", "", "Filter by orbit regime (comma-separated)")
	fs.StringVar(&opts.Country, "country", "", "Filter by country (comma-separated)")
	fs.StringVar(&opts.Active, "active", "", "Filter by active flag (true or false)")
	fs.Float64Var(&opts.MinAltitudeKm, "min-altitude", 0, "Minimum altitude in km")
	fs.Float64Var(&opts.MaxAltitudeKm, "max-altitude", 0, "Maximum altitude in km")
	fs.Float64Var(&opts.MinInclination, "min-inclination", 0, "Minimum inclination in degrees")
	fs.Float64Var(&opts.MaxInclination, "max-inclination", 0, "Maximum inclination in degrees")
	_ = fs.Parse(args)
	return opts, fs
}

func usage() {
	fmt.Print(`
  satctl — Sattrack control CLI

  USAGE
    satctl [flags] <command> [command-flags]

  COMMANDS (query)
    status          Show daemon uptime, providers, and cache path
    health          Check daemon and component health
    version         Show CLI and daemon version information
    config          Show the daemon's running configuration
    satellites      List the satellite catalog (or show one by catalog ID)
    stats           Show aggregate satellite statistics

  COMMANDS (control)
    cache-clear     Drop every cached satellite entry

  COMMANDS (live)
    watch           Stream live events from the daemon (Ctrl-C to stop)

  GLOBAL FLAGS
    -H, --host URL      Daemon base URL (default: http://127.0.0.1:8080)
        --json          Output raw JSON instead of formatted text
        --filter TYPE   Event types to show in watch (comma-separated)

  COMMAND FLAGS
    satellites, stats:
        --mission LIST          Filter by mission type
        --regime LIST           Filter by orbit regime
        --country LIST          Filter by country
        --active BOOL           Filter by active flag
        --min-altitude KM       Minimum altitude
        --max-altitude KM       Maximum altitude
        --min-inclination DEG   Minimum inclination
        --max-inclination DEG   Maximum inclination

  EXAMPLES
    satctl status
    satctl --json satellites
    satctl satellites 25544
    satctl satellites --regime low-earth-orbit --active true
    satctl stats --country US
    satctl cache-clear
    satctl --host http://192.168.8.1:8080 watch
    satctl watch --filter fetch_completed,provider_failed

`)
}
