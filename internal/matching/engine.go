// Package matching implements the mood-to-therapist filter engine: mood
// expansion, tag filtering, and great-circle distance ranking.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/therapick/therapick-api/internal/types"
)

// earthRadiusMiles is the haversine Earth radius.
const earthRadiusMiles = 3959

// unknownDistance sorts therapists without coordinates after every ranked
// result.
const unknownDistance = 999

// Match filters the directory by the selected moods and, when an origin is
// given, ranks ascending by distance. An empty mood selection yields an
// empty result, never the full directory.
func Match(moodLabels []string, directory []types.Therapist, origin *types.Coordinates) []types.Therapist {
	if len(moodLabels) == 0 {
		return nil
	}
	matched := FilterBySpecialties(directory, Expand(moodLabels))
	if origin != nil {
		matched = RankByDistance(matched, *origin)
	}
	return matched
}

// FilterBySpecialties keeps therapists where any tag contains any of the
// specialties, case-insensitively. Substring containment (not exact match)
// is the intended policy: a "Depression Screening" tag matches specialty
// "Depression".
func FilterBySpecialties(directory []types.Therapist, specialties []string) []types.Therapist {
	if len(specialties) == 0 {
		return nil
	}
	lowered := make([]string, len(specialties))
	for i, s := range specialties {
		lowered[i] = strings.ToLower(s)
	}

	var matched []types.Therapist
	for _, t := range directory {
		if tagsMatch(t.Tags, lowered) {
			matched = append(matched, t)
		}
	}
	return matched
}

func tagsMatch(tags, loweredSpecialties []string) bool {
	for _, tag := range tags {
		lt := strings.ToLower(tag)
		for _, spec := range loweredSpecialties {
			if strings.Contains(lt, spec) {
				return true
			}
		}
	}
	return false
}

// RankByDistance attaches the distance from origin to each therapist with
// coordinates and sorts ascending. Entries without coordinates keep a nil
// distance and sort last. The sort is stable so directory order breaks
// ties.
func RankByDistance(directory []types.Therapist, origin types.Coordinates) []types.Therapist {
	ranked := make([]types.Therapist, len(directory))
	copy(ranked, directory)
	for i := range ranked {
		if c := ranked[i].Coordinates; c != nil {
			d := Distance(origin, *c)
			ranked[i].Distance = &d
		} else {
			ranked[i].Distance = nil
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return distanceOrDefault(ranked[i].Distance) < distanceOrDefault(ranked[j].Distance)
	})
	return ranked
}

func distanceOrDefault(d *float64) float64 {
	if d == nil {
		return unknownDistance
	}
	return *d
}

// Distance computes the great-circle distance between two points in miles
// using the haversine formula.
func Distance(a, b types.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
