package domain

import "strings"

var conditionEffects = map[Condition]string{
	ClearSkies:    "No weather effects.",
	LightClouds:   "No weather effects.",
	HeavyClouds:   "The sky is overcast; stars and the sun are hidden.",
	Fog:           "The area is lightly obscured. Perception checks relying on sight have disadvantage.",
	Rain:          "The area is lightly obscured. Open flames are extinguished on a 1-in-4 chance each hour.",
	HeavyRain:     "The area is heavily obscured beyond 60 feet. Perception checks relying on sight or hearing have disadvantage, and open flames are extinguished.",
	Thunderstorm:  "The area is heavily obscured. Travel pace is halved, and lightning may strike the tallest creature in the open.",
	Snow:          "The ground is difficult terrain once snow settles. Tracks are easy to follow.",
	Blizzard:      "The area is heavily obscured and the ground is difficult terrain. Creatures without cold weather gear must make Constitution saves each hour or gain exhaustion.",
	FreezingCold:  "Creatures without cold weather gear must make a DC 10 Constitution save each hour or gain a level of exhaustion.",
	ColdWinds:     "Biting winds chill exposed skin. Creatures without cold weather gear have disadvantage on Constitution saves against cold.",
	ScorchingHeat: "Creatures without access to water must make Constitution saves each hour or gain a level of exhaustion. Heavy armor imposes disadvantage on the save.",
	HumidHaze:     "The air is thick and muggy. Long rests in the open recover only half as many hit dice.",
	Sandstorm:     "The area is heavily obscured. Unprotected creatures are blinded, and travel is nearly impossible.",
}

var windEffects = map[WindIntensity]string{
	StrongWinds: "Strong winds impose disadvantage on ranged weapon attacks and extinguish open flames.",
	GaleForce:   "Gale force winds make ranged weapon attacks impossible beyond normal range. Flying creatures must land at the end of their turn.",
	StormForce:  "Storm force winds knock prone creatures of Medium size or smaller that fail a DC 15 Strength save. Flight is impossible.",
}

const (
	shootingStarText = "A shooting star streaks across the sky."
	meteorImpactText = "A meteor blazes overhead and strikes the ground somewhere in the distance."
)

// ConditionEffect returns the narrative copy for a condition.
func ConditionEffect(c Condition) string {
	if text, ok := conditionEffects[c]; ok {
		return text
	}
	return conditionEffects[DefaultCondition]
}

// WindEffect returns the gameplay text for an intensity tier, empty below
// Strong Winds.
func WindEffect(i WindIntensity) string {
	return windEffects[i]
}

// CelestialEffect returns the text for the highest tier event present.
func CelestialEffect(ev CelestialEvents) string {
	switch {
	case ev.MeteorImpact:
		return meteorImpactText
	case ev.ShootingStar:
		return shootingStarText
	default:
		return ""
	}
}

// ComposeEffects joins the condition, wind and celestial texts of an hour.
func ComposeEffects(c Condition, i WindIntensity, ev CelestialEvents) string {
	parts := []string{ConditionEffect(c)}
	if w := WindEffect(i); w != "" {
		parts = append(parts, w)
	}
	if s := CelestialEffect(ev); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
