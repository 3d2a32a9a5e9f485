package domain

import (
	"fmt"
	"sort"
)

// jacketTargets is the minimum load distribution reference table:
// jacket ID → load case → leg → minimum percentage share of total load.
//
// Values come from the per-jacket levelling procedures and are fixed at
// design time. Do not edit without the corresponding procedure revision.
var jacketTargets = map[string]map[Case]map[Leg]float64{
	"G05": {
		CaseEAC: {LegA: 11.6, LegB: 11.4, LegC: 22.9, LegD: 12.3},
		CaseOBS: {LegA: 17.3, LegB: 20.1, LegC: 22.9, LegD: 17.0},
	},
	"H05": {
		CaseEAC: {LegA: 11.6, LegB: 11.4, LegC: 22.9, LegD: 12.3},
		CaseOBS: {LegA: 17.3, LegB: 20.1, LegC: 22.9, LegD: 17.0},
	},
	"J05": {
		CaseEAC: {LegA: 11.6, LegB: 11.4, LegC: 22.9, LegD: 12.3},
		CaseOBS: {LegA: 17.4, LegB: 20.1, LegC: 22.9, LegD: 16.9},
	},
	"D07 (Radar)": {
		CaseEAC: {LegA: 11.8, LegB: 11.6, LegC: 22.6, LegD: 12.1},
		CaseOBS: {LegA: 17.6, LegB: 20.4, LegC: 22.6, LegD: 16.6},
	},
}

func init() {
	// Every jacket must carry both cases, each covering exactly legs A-D.
	for id, cases := range jacketTargets {
		for _, c := range Cases() {
			row, ok := cases[c]
			if !ok {
				panic(fmt.Sprintf("reference table: jacket %q missing case %s", id, c))
			}
			if len(row) != len(legOrder) {
				panic(fmt.Sprintf("reference table: jacket %q case %s has %d legs", id, c, len(row)))
			}
			for _, leg := range legOrder {
				if _, ok := row[leg]; !ok {
					panic(fmt.Sprintf("reference table: jacket %q case %s missing leg %s", id, c, leg))
				}
			}
		}
	}
}

// Targets returns the minimum percentage targets for the given jacket and
// load case. The returned map is a copy; mutating it does not affect the
// reference table. Fails with ErrNotFound for an unknown jacket or case.
func Targets(jacketID string, c Case) (map[Leg]float64, error) {
	cases, ok := jacketTargets[jacketID]
	if !ok {
		return nil, fmt.Errorf("%w: jacket %q", ErrNotFound, jacketID)
	}
	row, ok := cases[c]
	if !ok {
		return nil, fmt.Errorf("%w: jacket %q case %q", ErrNotFound, jacketID, c)
	}

	targets := make(map[Leg]float64, len(row))
	for leg, min := range row {
		targets[leg] = min
	}
	return targets, nil
}

// JacketIDs returns the known jacket identifiers, sorted.
func JacketIDs() []string {
	ids := make([]string, 0, len(jacketTargets))
	for id := range jacketTargets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
