package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/version"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second

	// horizonsStep separates the two samples used for daily motion.
	horizonsStep = time.Hour
)

// HorizonsProvider queries JPL Horizons for geocentric ecliptic longitudes.
// Bodies Horizons has no target for (lunar node, apogee) and the houses
// come from the builtin series.
type HorizonsProvider struct {
	client  *http.Client
	baseURL string
	builtin *BuiltinProvider
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider(cfg Config, builtin *BuiltinProvider) *HorizonsProvider {
	if builtin == nil {
		builtin = NewBuiltinProvider(cfg.HouseSystem)
	}
	baseURL := cfg.HorizonsURL
	if baseURL == "" {
		baseURL = HorizonsAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = RequestTimeout
	}
	return &HorizonsProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		builtin: builtin,
	}
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "horizons"
}

// PositionsAt implements Provider.
func (p *HorizonsProvider) PositionsAt(ctx context.Context, jdUT float64, bodies []astro.Body) (map[astro.Body]Position, error) {
	out := make(map[astro.Body]Position, len(bodies))
	var local []astro.Body

	t := astro.TimeFromJulianDay(jdUT)
	for _, b := range bodies {
		naif := b.Info().NAIFID
		if naif == 0 {
			local = append(local, b)
			continue
		}
		pos, err := p.queryLongitude(ctx, naif, t)
		if err != nil {
			return nil, errors.Wrap(errors.CodeEphemeris, err, "horizons lookup for %s", b)
		}
		out[b] = pos
	}

	if len(local) > 0 {
		rest, err := p.builtin.PositionsAt(ctx, jdUT, local)
		if err != nil {
			return nil, err
		}
		for b, pos := range rest {
			out[b] = pos
		}
	}
	return out, missingBodies(out, bodies)
}

// HousesAt implements Provider.
func (p *HorizonsProvider) HousesAt(ctx context.Context, jdUT, latDeg, lonDeg float64) (Houses, error) {
	return p.builtin.HousesAt(ctx, jdUT, latDeg, lonDeg)
}

// queryLongitude fetches two samples an hour apart for a target and
// derives the daily motion from them.
func (p *HorizonsProvider) queryLongitude(ctx context.Context, target int, t time.Time) (Position, error) {
	// Build request parameters - values must be quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", target))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'500@399'") // geocenter
	params.Set("TIME_TYPE", "UT")
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t.Add(horizonsStep))))
	params.Set("STEP_SIZE", fmt.Sprintf("'%s'", formatStepSize(horizonsStep)))
	params.Set("QUANTITIES", "'31'") // 31=Observer ecliptic lon/lat

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Position{}, fmt.Errorf("horizons request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := p.client.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Position{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Position{}, fmt.Errorf("failed to read response: %w", err)
	}

	points, err := parseHorizonsResponse(body)
	if err != nil {
		return Position{}, err
	}
	if len(points) < 2 {
		return Position{}, fmt.Errorf("horizons returned %d points, need 2", len(points))
	}

	dtDays := points[1].Time.Sub(points[0].Time).Hours() / 24
	if dtDays <= 0 {
		return Position{}, fmt.Errorf("horizons samples out of order")
	}
	// Forward difference from the requested moment.
	return motion(points[0].Lon, points[0].Lon, points[1].Lon, dtDays), nil
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// eclipticPoint is one row of a QUANTITIES='31' table.
type eclipticPoint struct {
	Time time.Time
	Lon  float64
	Lat  float64
}

// parseHorizonsResponse parses the Horizons JSON response.
func parseHorizonsResponse(body []byte) ([]eclipticPoint, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("horizons: %s", strings.TrimSpace(resp.Error))
	}

	// The actual ephemeris data is in resp.Result as a text blob
	return parseEphemerisTable(resp.Result)
}

// parseEphemerisTable extracts rows between the $$SOE and $$EOE markers.
func parseEphemerisTable(result string) ([]eclipticPoint, error) {
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find ephemeris data markers")
	}

	var points []eclipticPoint
	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		point, err := parseEphemerisLine(line)
		if err != nil {
			continue // Skip unparseable lines
		}
		points = append(points, point)
	}
	return points, nil
}

// parseEphemerisLine parses a single ephemeris data line.
// Format for QUANTITIES='31' (ObsEcLon/ObsEcLat):
// 2024-Mar-20 03:00 *   359.9992311   0.0001542
// Fields: date, time, optional flags, longitude, latitude
func parseEphemerisLine(line string) (eclipticPoint, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return eclipticPoint{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	t, err := parseHorizonsDateTime(fields[0] + " " + fields[1])
	if err != nil {
		return eclipticPoint{}, err
	}

	// Skip any flag fields (like *, *m, Cm, Nm, Am, etc.)
	var vals []float64
	for _, f := range fields[2:] {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			vals = append(vals, v)
			if len(vals) == 2 {
				break
			}
		}
	}
	if len(vals) < 2 {
		return eclipticPoint{}, fmt.Errorf("could not find ecliptic lon/lat values")
	}
	if vals[0] < 0 || vals[0] > 360 || vals[1] < -90 || vals[1] > 90 {
		return eclipticPoint{}, fmt.Errorf("ecliptic values out of range: %v %v", vals[0], vals[1])
	}

	return eclipticPoint{Time: t, Lon: astro.Normalize360(vals[0]), Lat: vals[1]}, nil
}

// parseHorizonsDateTime parses Horizons date format like "2025-Dec-05 00:00".
func parseHorizonsDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-Jan-02 15:04", "2006-Jan-02 15:04:05", "2006-Jan-02 15:04:05.000"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// formatStepSize formats a duration as a Horizons step size.
func formatStepSize(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes >= 60 && minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	return fmt.Sprintf("%d m", minutes)
}
