package domain

import (
	"strings"
	"time"
)

// Season is one of the four climate seasons, or SeasonAuto to derive it from
// the calendar date of each generated hour.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonAuto   Season = "auto"
)

// Seasons lists the concrete seasons in calendar order.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// seasonBoundaries are the fixed equinox/solstice start days, in calendar order.
var seasonBoundaries = []struct {
	month  time.Month
	day    int
	season Season
}{
	{time.March, 20, SeasonSpring},
	{time.June, 21, SeasonSummer},
	{time.September, 22, SeasonFall},
	{time.December, 21, SeasonWinter},
}

// ParseSeason normalizes user input ("Autumn", " SUMMER ") to a Season.
// Returns false for unknown names.
func ParseSeason(s string) (Season, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spring":
		return SeasonSpring, true
	case "summer":
		return SeasonSummer, true
	case "fall", "autumn":
		return SeasonFall, true
	case "winter":
		return SeasonWinter, true
	case "auto", "":
		return SeasonAuto, true
	default:
		return "", false
	}
}

// SeasonForDate returns the season whose boundary most recently passed in the
// date's own year. Dates before the spring equinox fall in winter.
func SeasonForDate(date time.Time) Season {
	season := SeasonWinter
	for _, b := range seasonBoundaries {
		start := time.Date(date.Year(), b.month, b.day, 0, 0, 0, 0, date.Location())
		if date.Before(start) {
			break
		}
		season = b.season
	}
	return season
}

// Resolve returns s unless it is SeasonAuto, in which case the season is
// derived from date.
func (s Season) Resolve(date time.Time) Season {
	if s == SeasonAuto || s == "" {
		return SeasonForDate(date)
	}
	return s
}
