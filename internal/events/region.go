package events

import "fmt"

// Coarse geographic region naming. A 30°x60° band/sector grid keeps the
// region field stable and human-readable without shipping a full
// Flinn-Engdahl lookup table.

var latBands = []struct {
	min  float64
	name string
}{
	{60, "ARCTIC"},
	{30, "NORTHERN"},
	{0, "NORTH EQUATORIAL"},
	{-30, "SOUTH EQUATORIAL"},
	{-60, "SOUTHERN"},
	{-90, "ANTARCTIC"},
}

var lonSectors = []struct {
	min  float64
	name string
}{
	{120, "WEST PACIFIC"},
	{60, "CENTRAL ASIA"},
	{0, "EUROPE-AFRICA"},
	{-60, "ATLANTIC"},
	{-120, "AMERICAS"},
	{-180, "EAST PACIFIC"},
}

// regionName maps an origin to its band/sector region label. Inputs are
// assumed range-checked by the extractor.
func regionName(lat, lon float64) string {
	band := latBands[len(latBands)-1].name
	for _, b := range latBands {
		if lat >= b.min {
			band = b.name
			break
		}
	}
	sector := lonSectors[len(lonSectors)-1].name
	for _, s := range lonSectors {
		if lon >= s.min {
			sector = s.name
			break
		}
	}
	return fmt.Sprintf("%s %s", band, sector)
}
