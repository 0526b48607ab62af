// Package domain models hourly fantasy weather: conditions, temperatures,
// winds, celestial events, and the climate data they are drawn from.
//
// # Climate Tables
//
// Each {biome, season} pair has a table of d100 ranges ordered from the
// mildest condition to the most severe:
//
//	Temperate summer:
//	  1-35 Clear Skies | 36-55 Light Clouds | 56-65 Humid Haze | 66-75 Heavy Clouds
//	  76-88 Rain       | 89-94 Heavy Rain   | 95-100 Thunderstorm
//
// A table entry's index doubles as its severity, which the random walk moves
// along. Pairs with no table fall back to a single Clear Skies entry.
//
// # Condition Selection
//
// A region keeps its condition for a chunk of 1d8 hours. At each chunk
// boundary the condition is re-selected in two stages:
//
//	Burnout: severe conditions accrue one energy per hour they persist.
//	  effectiveDC = baseDC + energy * increasePerHour
//	  A d20 roll below effectiveDC regresses the condition one step toward
//	  calm (Thunderstorm -> Heavy Rain -> Rain -> Heavy Clouds -> Light Clouds).
//	Walk: otherwise a d20 shifts severity along the table.
//	  1: -2 | 2-5: -1 | 6-15: stay | 16-19: +1 | 20: +2 (clamped to the table)
//
// Energy resets whenever the condition changes. Clear Skies and Light Clouds
// never burn out. See [ConditionModel.Step].
//
// # Seasons
//
// Seasons start on fixed days every year: spring Mar 20, summer Jun 21,
// fall Sep 22, winter Dec 21. See [SeasonForDate].
//
// # Temperature and Wind
//
// Temperatures are Fahrenheit, drawn from the {biome, season, condition} range
// plus a diurnal offset, then limited to a 5 degree swing per hour. Wind speed
// is mph, eases toward a per-condition target, and never drops below zero.
// Intensity tiers use exclusive upper bounds:
//
//	Calm <5 | Breezy <15 | Windy <25 | Strong Winds <39 | Gale Force <55 | Storm Force
//
// # Randomness
//
// Every draw goes through a [Roller]. Production rollers are PCG sources
// seeded from the simulation seed and a salt (the region id), so a run replays
// exactly for the same seed.
package domain
