package domain

import (
	"fmt"
	"time"
)

// Reading is one saved set of leg pressures for a jacket. Readings are
// immutable once created: they are appended to the pressure register and
// never updated or deleted.
type Reading struct {
	JacketID  string          `json:"jacket_id"`
	Case      Case            `json:"case"`
	Timestamp time.Time       `json:"timestamp"`
	Pressures map[Leg]float64 `json:"pressures"`
}

// NewReading stamps the current time onto a reading. The pressures map is
// copied so later mutation by the caller cannot reach the stored value.
func NewReading(jacketID string, c Case, pressures map[Leg]float64) Reading {
	copied := make(map[Leg]float64, len(pressures))
	for leg, p := range pressures {
		copied[leg] = p
	}
	return Reading{
		JacketID:  jacketID,
		Case:      c,
		Timestamp: clock.Now(),
		Pressures: copied,
	}
}

// ValidatePressures checks the input contract shared by readings and the
// distribution calculator: exactly legs A-D present, every value >= 0.
func ValidatePressures(pressures map[Leg]float64) error {
	for _, leg := range legOrder {
		p, ok := pressures[leg]
		if !ok {
			return fmt.Errorf("%w: missing pressure for leg %s", ErrValidation, leg)
		}
		if p < 0 {
			return fmt.Errorf("%w: negative pressure %g for leg %s", ErrValidation, p, leg)
		}
	}
	if len(pressures) != len(legOrder) {
		for leg := range pressures {
			if _, ok := legLabels[leg]; !ok {
				return fmt.Errorf("%w: unknown leg %q", ErrValidation, leg)
			}
		}
	}
	return nil
}

// Validate checks that the reading references a known jacket and case and
// carries a valid pressure set.
func (r Reading) Validate() error {
	if _, err := Targets(r.JacketID, r.Case); err != nil {
		return err
	}
	return ValidatePressures(r.Pressures)
}
