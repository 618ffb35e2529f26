package events

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/seisflow/seisflow/internal/seiserr"
)

// eventFile mirrors the on-disk event format. Optional fields are pointers
// so absence can be told apart from zero.
type eventFile struct {
	Event struct {
		OriginTime string `toml:"origin_time"`
		Origin     *struct {
			Latitude  *float64 `toml:"latitude"`
			Longitude *float64 `toml:"longitude"`
			DepthInKm *float64 `toml:"depth_in_km"`
		} `toml:"origin"`
		Magnitude *struct {
			Magnitude *float64 `toml:"magnitude"`
			Type      string   `toml:"type"`
		} `toml:"magnitude"`
	} `toml:"event"`
}

// Extract parses one event file into values ordered per Index. A file
// without an origin (or origin coordinates) is malformed; absent optional
// fields are defaulted with an advisory warning, never silently.
func Extract(path string) ([]any, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading event file: %w", err)
	}

	var ef eventFile
	if err := toml.Unmarshal(raw, &ef); err != nil {
		return nil, nil, &seiserr.MalformedSourceError{Path: path, Reason: err.Error()}
	}

	origin := ef.Event.Origin
	if origin == nil || origin.Latitude == nil || origin.Longitude == nil {
		return nil, nil, &seiserr.MalformedSourceError{
			Path:   path,
			Reason: "no origin with latitude and longitude",
		}
	}
	lat, lon := *origin.Latitude, *origin.Longitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, nil, &seiserr.MalformedSourceError{
			Path:   path,
			Reason: fmt.Sprintf("origin coordinates (%g, %g) out of range", lat, lon),
		}
	}

	var warnings []string
	depth := 0.0
	if origin.DepthInKm != nil {
		depth = *origin.DepthInKm
	} else {
		warnings = append(warnings, "no depth_in_km in origin, assuming 0.0 km")
	}

	mag := 0.0
	if ef.Event.Magnitude != nil && ef.Event.Magnitude.Magnitude != nil {
		mag = *ef.Event.Magnitude.Magnitude
	} else {
		warnings = append(warnings, "no magnitude, assuming 0.0")
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return []any{
		path,
		name,
		lat,
		lon,
		depth,
		mag,
		regionName(lat, lon),
	}, warnings, nil
}
