package domain

import "fmt"

// Leg identifies one of the four support legs of a jacket.
type Leg string

const (
	LegA Leg = "A"
	LegB Leg = "B"
	LegC Leg = "C"
	LegD Leg = "D"
)

// legOrder is the canonical leg order used for iteration, display, and the
// persisted register columns.
var legOrder = [4]Leg{LegA, LegB, LegC, LegD}

// legLabels maps each leg to its position label from the levelling drawings.
var legLabels = map[Leg]string{
	LegA: "BP (A)",
	LegB: "BQ (B)",
	LegC: "AQ (C)",
	LegD: "AP (D)",
}

// Legs returns the four legs in canonical order.
func Legs() []Leg {
	return []Leg{LegA, LegB, LegC, LegD}
}

// Label returns the leg's position label, e.g. "BP (A)" for leg A.
func (l Leg) Label() string {
	return legLabels[l]
}

// ParseLeg validates a leg identifier.
func ParseLeg(s string) (Leg, error) {
	switch Leg(s) {
	case LegA, LegB, LegC, LegD:
		return Leg(s), nil
	default:
		return "", fmt.Errorf("%w: unknown leg %q", ErrValidation, s)
	}
}

// Case identifies the load case a set of minimum targets applies to.
type Case string

const (
	// CaseEAC is the environmental / as-constructed case (normal levelling).
	CaseEAC Case = "EAC"
	// CaseOBS is the observed / extreme condition case.
	CaseOBS Case = "OBS"
)

// Cases returns the known load cases.
func Cases() []Case {
	return []Case{CaseEAC, CaseOBS}
}

// ParseCase validates a load case identifier.
func ParseCase(s string) (Case, error) {
	switch Case(s) {
	case CaseEAC, CaseOBS:
		return Case(s), nil
	default:
		return "", fmt.Errorf("%w: unknown case %q", ErrNotFound, s)
	}
}
