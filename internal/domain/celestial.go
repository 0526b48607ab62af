package domain

const (
	shootingStarOdds = 100
	meteorImpactOdds = 20
)

// CelestialEvents are the rare narrative events rolled for every hour.
// A meteor impact always implies a shooting star.
type CelestialEvents struct {
	ShootingStar bool
	MeteorImpact bool
}

// RollCelestial rolls 1-in-100 for a shooting star and, only on a hit, 1-in-20
// for the star to come down as a meteor impact.
func RollCelestial(r Roller) CelestialEvents {
	if !OneIn(r, shootingStarOdds) {
		return CelestialEvents{}
	}
	return CelestialEvents{ShootingStar: true, MeteorImpact: OneIn(r, meteorImpactOdds)}
}
