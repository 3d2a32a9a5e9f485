package domain

// RelevelAdvice is the operator guidance shown when one or more legs fall
// below their minimum target.
const RelevelAdvice = "Re-level the jacket. Remember to watch the level indicator while levelling."

// Distribution is the derived result of comparing one pressure set against a
// jacket's minimum targets. It is computed fresh on every evaluation and
// never stored.
type Distribution struct {
	// Percentages is each leg's share of the total pressure, 0-100.
	// All zero when TotalPressure is zero.
	Percentages map[Leg]float64 `json:"percentages"`

	// TotalPressure is the sum of the four leg pressures in bar.
	TotalPressure float64 `json:"total_pressure"`

	// LegsBelowMinimum lists the legs whose percentage is strictly below
	// their minimum target, in canonical order. A leg exactly at its target
	// is not included.
	LegsBelowMinimum []Leg `json:"legs_below_minimum"`
}

// Pass reports whether every leg meets its minimum target.
func (d Distribution) Pass() bool {
	return len(d.LegsBelowMinimum) == 0
}

// ComputeDistribution turns four raw leg pressures into percentage shares and
// flags the legs below their minimum targets. Pure and deterministic.
//
// A zero total is the valid "no load yet" state: every percentage is zero,
// which puts every leg with a positive target below minimum. That is the
// expected verdict, not an error.
func ComputeDistribution(pressures, targets map[Leg]float64) (Distribution, error) {
	if err := ValidatePressures(pressures); err != nil {
		return Distribution{}, err
	}

	total := 0.0
	for _, leg := range legOrder {
		total += pressures[leg]
	}

	percentages := make(map[Leg]float64, len(legOrder))
	var below []Leg
	for _, leg := range legOrder {
		pct := 0.0
		if total > 0 {
			pct = 100 * pressures[leg] / total
		}
		percentages[leg] = pct
		if pct < targets[leg] {
			below = append(below, leg)
		}
	}

	return Distribution{
		Percentages:      percentages,
		TotalPressure:    total,
		LegsBelowMinimum: below,
	}, nil
}
