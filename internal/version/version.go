// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP server with SVG/JSON charts, Horizons ephemeris, metrics
// 0.2.0 - Placidus/Porphyry/equal/whole-sign houses, prefecture table
// 0.1.0 - Initial release: three-ring wheel TUI, natal/progressed/transit tables

// UserAgent identifies outgoing HTTP requests.
func UserAgent() string {
	return "ls-trichart/" + Version
}
