package tunneling

import "math"

// AgeOfUniverse is the age of the known universe in GeV⁻¹
// (13.8 Gyr / ħ).
const AgeOfUniverse = 6.6e41

// DefaultSurvivalThreshold is the survival probability below which a
// vacuum counts as decayed.
const DefaultSurvivalThreshold = 0.01

// QuantumSurvivalProbability returns exp(−exp(4·ln(age·scale) − action)),
// the probability that a false vacuum with zero-temperature bounce action
// and energy scale (GeV) survived to the present day.
func QuantumSurvivalProbability(action, scale float64) float64 {
	if math.IsNaN(action) {
		return math.NaN()
	}
	return math.Exp(-math.Exp(4*math.Log(AgeOfUniverse*scale) - action))
}

// ActionThreshold returns the S₄ for which QuantumSurvivalProbability
// equals survival.
func ActionThreshold(survival, scale float64) float64 {
	return 4*math.Log(AgeOfUniverse*scale) - math.Log(-math.Log(survival))
}

// tunnelingScale is √(scale²) floored at 1.
func tunnelingScale(scaleSquared float64) float64 {
	if !(scaleSquared > 1) {
		return 1
	}
	return math.Sqrt(scaleSquared)
}
